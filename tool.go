package symroot

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/njchilds90/symroot/poly"
	"github.com/njchilds90/symroot/roots"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool request with DefaultConfig.
func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallWith(req, DefaultConfig())
}

// HandleToolCallWith runs one tool request. Expression parameters may be
// JSON expression objects or infix strings accepted by Parse. Failures are
// reported in ToolResponse.Error, never as a panic.
func HandleToolCallWith(req ToolRequest, cfg Config) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case map[string]interface{}:
			return FromJSON(val)
		case string:
			return Parse(val)
		case float64:
			return NFloat(val), nil
		}
		return nil, fmt.Errorf("invalid type for param %s", key)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	optString := func(key string) (string, error) {
		if _, ok := req.Params[key]; !ok {
			return "", nil
		}
		return getString(key)
	}
	optInt := func(key string, def int) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		if math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("param %s out of range", key)
		}
		return int(f), nil
	}
	getBound := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		switch b := v.(type) {
		case float64:
			return b, nil
		case string:
			switch b {
			case "inf", "+inf":
				return math.Inf(1), nil
			case "-inf":
				return math.Inf(-1), nil
			}
		}
		return 0, fmt.Errorf("param %s must be a number or \"inf\"/\"-inf\"", key)
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: LaTeX(e), String: String(e)}
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error()}
	}

	switch req.Tool {
	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(SimplifyWith(e, cfg))

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		n, err := optInt("n", 1)
		if err != nil {
			return fail(err)
		}
		if n < 0 {
			return fail(fmt.Errorf("param n must be non-negative"))
		}
		if err := cfg.CheckOrder(n); err != nil {
			return fail(err)
		}
		for i := 0; i < n; i++ {
			e = SimplifyWith(Derivative(e, v), cfg)
		}
		return respond(e)

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(SimplifyWith(Substitute(e, v, val), cfg))

	case "integrate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		res, err := Integrate(e, v)
		if err != nil {
			return fail(err)
		}
		return respond(res)

	case "taylor", "maclaurin":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		order, err := optInt("order", 5)
		if err != nil {
			return fail(err)
		}
		if err := cfg.CheckOrder(order); err != nil {
			return fail(err)
		}
		var around Expr = N(0)
		if _, ok := req.Params["around"]; ok && req.Tool == "taylor" {
			if around, err = getExpr("around"); err != nil {
				return fail(err)
			}
		}
		return respond(TaylorSeries(e, v, around, order))

	case "eval":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		env := map[string]float64{}
		if raw, ok := req.Params["env"].(map[string]interface{}); ok {
			for k, x := range raw {
				f, ok := x.(float64)
				if !ok {
					return fail(fmt.Errorf("env.%s must be a number", k))
				}
				env[k] = f
			}
		}
		x, err := Eval(e, env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: x, String: fmt.Sprintf("%g", x)}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: LaTeX(e), LaTeX: LaTeX(e), String: String(e)}

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		vars := FreeVars(e)
		return ToolResponse{Result: vars, String: strings.Join(vars, ", ")}

	case "poly_coeffs":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := optString("var")
		if err != nil {
			return fail(err)
		}
		p, err := toPoly(e, v, cfg)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: ratStrings(p), String: p.String()}

	case "real_roots":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := optString("var")
		if err != nil {
			return fail(err)
		}
		if t, ok := req.Params["tolerance"].(float64); ok {
			cfg.Roots.Tolerance = t
		}
		rs, err := RealRoots(e, v, cfg)
		if err != nil {
			return fail(err)
		}
		out := make([]map[string]interface{}, len(rs))
		strs := make([]string, len(rs))
		for i, r := range rs {
			out[i] = rootJSON(r)
			strs[i] = fmt.Sprintf("%g", r.Value)
		}
		return ToolResponse{Result: out, String: strings.Join(strs, ", ")}

	case "isolate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := optString("var")
		if err != nil {
			return fail(err)
		}
		ivs, err := IsolateRoots(e, v, cfg)
		if err != nil {
			return fail(err)
		}
		out := make([]map[string]interface{}, len(ivs))
		strs := make([]string, len(ivs))
		for i, iv := range ivs {
			out[i] = map[string]interface{}{"lo": iv.Lo.RatString(), "hi": iv.Hi.RatString()}
			strs[i] = fmt.Sprintf("(%s, %s)", poly.FormatRat(iv.Lo), poly.FormatRat(iv.Hi))
		}
		return ToolResponse{Result: out, String: strings.Join(strs, ", ")}

	case "root_count":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := optString("var")
		if err != nil {
			return fail(err)
		}
		a, err := getBound("a")
		if err != nil {
			return fail(err)
		}
		b, err := getBound("b")
		if err != nil {
			return fail(err)
		}
		n, err := CountRoots(e, v, a, b)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: n, String: fmt.Sprint(n)}

	case "sturm_chain":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := optString("var")
		if err != nil {
			return fail(err)
		}
		chain, err := SturmChain(e, v)
		if err != nil {
			return fail(err)
		}
		strs := make([]string, 0, chain.Len())
		for _, p := range chain.Polys() {
			strs = append(strs, p.String())
		}
		return ToolResponse{Result: strs, String: strings.Join(strs, "; ")}

	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec())}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func rootJSON(r roots.Root) map[string]interface{} {
	return map[string]interface{}{
		"value":     r.Value,
		"lo":        r.Lo.RatString(),
		"hi":        r.Hi.RatString(),
		"tolerance": r.Tolerance,
		"exact":     r.Exact,
	}
}

func ratStrings(p poly.Poly) []string {
	cs := p.Coeffs()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.RatString()
	}
	return out
}

// ============================================================
// Tool schema
// ============================================================

// MCPToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func MCPToolSpec() string {
	expr1 := map[string]string{"expr": "object"}
	exprVar := map[string]string{"expr": "object", "var": "string"}
	tools := []map[string]interface{}{
		ts("simplify", "Simplify an expression to canonical form", []string{"expr"}, expr1),
		ts("diff", "Derivative d/dvar, simplified. Optional n (int) for higher order", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("substitute", "Substitute var with value and simplify", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("integrate", "Rule-based antiderivative", []string{"expr", "var"}, exprVar),
		ts("taylor", "Taylor series in nested form. Optional around (expr), order (int)", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "around": "object", "order": "integer"}),
		ts("maclaurin", "Taylor series around 0", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "order": "integer"}),
		ts("eval", "Numeric value. env maps variable IDs to numbers", []string{"expr"}, map[string]string{"expr": "object", "env": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, expr1),
		ts("free_symbols", "Return free variable IDs", []string{"expr"}, expr1),
		ts("poly_coeffs", "Exact coefficients, lowest degree first", []string{"expr"}, exprVar),
		ts("real_roots", "Distinct real roots of a polynomial. Optional tolerance", []string{"expr"}, map[string]string{"expr": "object", "var": "string", "tolerance": "number"}),
		ts("isolate", "Isolating intervals, one per distinct real root", []string{"expr"}, exprVar),
		ts("root_count", "Distinct real roots in (a, b]. Bounds may be \"inf\"/\"-inf\"", []string{"expr", "a", "b"}, map[string]string{"expr": "object", "var": "string", "a": "number", "b": "number"}),
		ts("sturm_chain", "Sturm sequence of the squarefree part", []string{"expr"}, exprVar),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
