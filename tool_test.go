package symroot_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symroot"
)

func call(tool string, params map[string]interface{}) symroot.ToolResponse {
	return symroot.HandleToolCall(symroot.ToolRequest{Tool: tool, Params: params})
}

func TestToolCalls(t *testing.T) {
	x := map[string]interface{}{"type": "sym", "name": "x"}
	tests := []struct {
		name   string
		tool   string
		params map[string]interface{}
		want   string
	}{
		{"simplify string", "simplify", map[string]interface{}{"expr": "(x+1)+(2+3)"}, "x + 6"},
		{"simplify object", "simplify", map[string]interface{}{"expr": map[string]interface{}{
			"type": "add", "left": x, "right": map[string]interface{}{"type": "num", "value": "0"},
		}}, "x"},
		{"diff", "diff", map[string]interface{}{"expr": "x^3", "var": "x"}, "3*x^2"},
		{"diff n", "diff", map[string]interface{}{"expr": "x^3", "var": "x", "n": 2.0}, "6*x"},
		{"substitute", "substitute", map[string]interface{}{"expr": "x^2 - 1", "var": "x", "value": "y + 1"}, "y^2 + 2*y"},
		{"integrate", "integrate", map[string]interface{}{"expr": "3*x^2", "var": "x"}, "x^3"},
		{"maclaurin", "maclaurin", map[string]interface{}{"expr": "exp(x)", "var": "x", "order": 2.0}, "1/2*x^2 + x + 1"},
		{"taylor", "taylor", map[string]interface{}{"expr": "x^2", "var": "x", "around": "1", "order": 2.0}, "x^2"},
		{"eval", "eval", map[string]interface{}{"expr": "x*y", "env": map[string]interface{}{"x": 2.0, "y": 4.5}}, "9"},
		{"free symbols", "free_symbols", map[string]interface{}{"expr": "y + x*y"}, "y, x"},
		{"poly coeffs", "poly_coeffs", map[string]interface{}{"expr": "(x - 1)^2"}, "x^2 - 2*x + 1"},
		{"real roots", "real_roots", map[string]interface{}{"expr": "x^2 - 1"}, "-1, 1"},
		{"root count", "root_count", map[string]interface{}{"expr": "x^2 - 1", "a": 0.0, "b": 2.0}, "1"},
		{"root count infinite", "root_count", map[string]interface{}{"expr": "x^3 - x", "a": "-inf", "b": "inf"}, "3"},
		{"sturm chain", "sturm_chain", map[string]interface{}{"expr": "x^2 - 1"}, "x^2 - 1; 2*x; 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(tt.tool, tt.params)
			require.Empty(t, resp.Error)
			assert.Equal(t, tt.want, resp.String)
		})
	}
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		params map[string]interface{}
		want   string
	}{
		{"unknown tool", "factor", nil, "unknown tool: factor"},
		{"missing expr", "simplify", map[string]interface{}{}, "missing param: expr"},
		{"bad var", "diff", map[string]interface{}{"expr": "x", "var": 3.0}, "param var must be a string"},
		{"bad order", "taylor", map[string]interface{}{"expr": "x", "var": "x", "order": 1.5}, "param order must be an integer"},
		{"unsupported integral", "integrate", map[string]interface{}{"expr": "sin(x^2)", "var": "x"}, "integration pattern not supported"},
		{"not polynomial", "real_roots", map[string]interface{}{"expr": "sin(x)"}, "not a polynomial"},
		{"parse error", "simplify", map[string]interface{}{"expr": "x +"}, "parse error"},
		{"bad bound", "root_count", map[string]interface{}{"expr": "x", "a": "zero", "b": 1.0}, "param a must be"},
		{"series order cap", "taylor", map[string]interface{}{"expr": "exp(x)", "var": "x", "order": 1e9}, "order exceeds limit"},
		{"diff order cap", "diff", map[string]interface{}{"expr": "x^2", "var": "x", "n": 65.0}, "order exceeds limit"},
		{"order out of range", "maclaurin", map[string]interface{}{"expr": "x", "var": "x", "order": 1e30}, "param order out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(tt.tool, tt.params)
			assert.Contains(t, resp.Error, tt.want)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestToolResultShapes(t *testing.T) {
	resp := call("real_roots", map[string]interface{}{"expr": "x^2 - 2", "tolerance": 1e-12})
	require.Empty(t, resp.Error)
	rs, ok := resp.Result.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, rs, 2)
	assert.InDelta(t, 1.41421356237, rs[1]["value"], 1e-10)
	assert.Equal(t, false, rs[1]["exact"])
	assert.Greater(t, rs[1]["tolerance"], 0.0)

	resp = call("isolate", map[string]interface{}{"expr": "x^3 - x"})
	require.Empty(t, resp.Error)
	ivs, ok := resp.Result.([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, ivs, 3)

	resp = call("simplify", map[string]interface{}{"expr": "x/2"})
	assert.Equal(t, `\frac{1}{2}x`, resp.LaTeX)
	assert.Equal(t, "poly", resp.Result.(map[string]interface{})["type"])
}

func TestMCPToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(symroot.MCPToolSpec()), &spec))

	names := map[string]bool{}
	for _, tool := range spec.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"simplify", "diff", "integrate", "real_roots", "root_count", "sturm_chain", "mcp_spec"} {
		assert.True(t, names[want], want)
	}

	// every advertised tool is dispatched
	for name := range names {
		resp := call(name, map[string]interface{}{})
		assert.NotContains(t, resp.Error, "unknown tool", name)
	}
}
