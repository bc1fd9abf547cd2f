package symroot

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/njchilds90/symroot/poly"
)

// ============================================================
// JSON Serialization
// ============================================================

func (c *Const) toJSON() map[string]interface{} {
	if c.rat != nil {
		return map[string]interface{}{"type": "num", "value": c.rat.RatString()}
	}
	return map[string]interface{}{"type": "num", "value": strconv.FormatFloat(c.f, 'g', -1, 64), "exact": false}
}

func (v *Var) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": v.name}
	if v.indexed {
		m["index"] = v.index
	}
	return m
}

func (u *Unary) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": unaryOps[u.op].name, "arg": u.arg.toJSON()}
}

func (b *Binary) toJSON() map[string]interface{} {
	if b.op == OpPow {
		return map[string]interface{}{"type": "pow", "base": b.left.toJSON(), "exp": b.right.toJSON()}
	}
	return map[string]interface{}{"type": binaryOps[b.op].name, "left": b.left.toJSON(), "right": b.right.toJSON()}
}

func (p *Poly) toJSON() map[string]interface{} {
	cs := p.p.Coeffs()
	out := make([]string, len(cs))
	for i, k := range cs {
		out[i] = k.RatString()
	}
	return map[string]interface{}{"type": "poly", "var": p.p.Var(), "coeffs": out}
}

// ToJSON encodes e as a JSON object.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// JSONValue returns the generic JSON form of e, suitable for embedding.
func JSONValue(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes an expression from its JSON text.
func ParseJSON(s string) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return FromJSON(m)
}

// FromJSON decodes an expression from a generic JSON object. For
// compatibility, "add" and "mul" also accept "terms" and "factors" arrays.
func FromJSON(data map[string]interface{}) (Expr, error) {
	e, err := fromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return e, nil
}

func fromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := fromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subList := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := fromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		if exact, ok := data["exact"].(bool); ok && !exact {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid num value: %s", val)
			}
			return NFloat(f), nil
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Const{rat: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if idx, ok := data["index"].(float64); ok {
			return SIdx(name, int(idx)), nil
		}
		return S(name), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		op, ok := unaryOpByName(name)
		if !ok {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return unaryOf(op, arg), nil

	case "pow":
		base, err := sub("base")
		if err != nil {
			return nil, err
		}
		exp, err := sub("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "add", "mul", "sub", "div":
		op, _ := binaryOpByName(typ)
		list := map[string]string{"add": "terms", "mul": "factors"}[typ]
		if _, ok := data[list]; ok && list != "" {
			items, err := subList(list)
			if err != nil {
				return nil, err
			}
			if op == OpAdd {
				return AddOf(items...), nil
			}
			return MulOf(items...), nil
		}
		l, err := sub("left")
		if err != nil {
			return nil, err
		}
		r, err := sub("right")
		if err != nil {
			return nil, err
		}
		return binaryOf(op, l, r), nil

	case "poly":
		v, err := subString("var")
		if err != nil {
			return nil, err
		}
		raw, ok := data["coeffs"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("poly: \"coeffs\" must be an array")
		}
		cs := make([]*big.Rat, len(raw))
		for i, it := range raw {
			r, err := jsonRat(it)
			if err != nil {
				return nil, fmt.Errorf("poly: coeffs[%d]: %w", i, err)
			}
			cs[i] = r
		}
		return PolyOf(poly.New(v, cs...)), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// jsonRat accepts a rational string or a JSON number.
func jsonRat(v interface{}) (*big.Rat, error) {
	switch x := v.(type) {
	case string:
		if r, ok := new(big.Rat).SetString(x); ok {
			return r, nil
		}
	case float64:
		if r := new(big.Rat).SetFloat64(x); r != nil {
			return r, nil
		}
	}
	return nil, fmt.Errorf("invalid coefficient %v", v)
}
