package cli

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symroot"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "symroot.log")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "symroot", cmd.Use)
	assert.Equal(t, rootLongDescription, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"simplify", "diff", "integrate", "series", "eval", "roots", "count", "sturm", "serve", "config", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestExpressionCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"simplify", []string{"simplify", "(x+1)+(2+3)"}, "x + 6\n"},
		{"simplify joins args", []string{"simplify", "x", "+", "0"}, "x\n"},
		{"simplify latex", []string{"simplify", "--latex", "x/2"}, `\frac{1}{2}x` + "\n"},
		{"simplify diff", []string{"simplify", "--diff", "x + 0"}, "x[- + 0-]\n"},
		{"diff", []string{"diff", "x^3"}, "3*x^2\n"},
		{"diff order", []string{"diff", "-n", "2", "x^3"}, "6*x\n"},
		{"diff var", []string{"diff", "--var", "t", "exp(t)*x"}, "exp(t)*x\n"},
		{"integrate", []string{"integrate", "3*x^2"}, "x^3\n"},
		{"series", []string{"series", "--order", "2", "exp(x)"}, "1/2*x^2 + x + 1\n"},
		{"series at", []string{"series", "--at", "1", "--order", "2", "x^2"}, "x^2\n"},
		{"eval", []string{"eval", "x*y", "--set", "x=2", "--set", "y=4.5"}, "9\n"},
		{"count", []string{"count", "x^2 - 1", "--from", "0", "--to", "2"}, "1\n"},
		{"count everywhere", []string{"count", "x^3 - x"}, "3\n"},
		{"sturm", []string{"sturm", "x^2 - 1"}, "p0: x^2 - 1\np1: 2*x\np2: 1\nreal roots: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSimplifyJSON(t *testing.T) {
	out, err := run(t, "simplify", "--json", "x + 1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"poly","var":"x","coeffs":["1","1"]}`, out)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unsupported integral", []string{"integrate", "sin(x^2)"}, symroot.ErrIntegrationUnsupported},
		{"parse error", []string{"simplify", "x +"}, symroot.ErrParse},
		{"not polynomial", []string{"roots", "sin(x)"}, symroot.ErrNotPolynomial},
		{"unbound", []string{"eval", "x*y", "--set", "x=1"}, symroot.ErrUnboundVariable},
		{"diff order cap", []string{"diff", "--order=100000", "x^2"}, symroot.ErrOrderLimit},
		{"series order cap", []string{"series", "--order=1000000000", "exp(x)"}, symroot.ErrOrderLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := run(t, "count", "x", "--from", "zero")
	assert.ErrorContains(t, err, `bound "zero"`)
	_, err = run(t, "roots")
	assert.ErrorContains(t, err, "need an expression")
	_, err = run(t, "diff", "--order=-1", "x")
	assert.ErrorContains(t, err, "non-negative")
}

func TestRootsTable(t *testing.T) {
	out, err := run(t, "roots", "x^3 - 6*x^2 + 11*x - 6")
	require.NoError(t, err)
	assert.Contains(t, out, "Root")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, separator and three roots
	assert.Len(t, lines, 5)

	out, err = run(t, "roots", "x^2 + 1")
	require.NoError(t, err)
	assert.Equal(t, "no real roots\n", out)
}

func TestRootsBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polys.txt")
	content := "x^2 - 1\n# comment\n\nx^3 - x\nsin(x)\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := run(t, "roots", "--file", path, "--parallel", "2")
	assert.ErrorContains(t, err, "1 of 3 expressions failed")
	assert.Contains(t, out, "Expression")
	assert.Contains(t, out, "x^3 - x")
	assert.Contains(t, out, "sin(x)")
	assert.NotContains(t, out, "comment")
}

func TestSolveAllKeepsOrder(t *testing.T) {
	srcs := []string{"x - 3", "x - 1", "x^2 - 4", "x + 7"}
	results, err := solveAll(context.Background(), srcs, "", symroot.DefaultConfig(), 3)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, srcs[i], r.src)
		require.NoError(t, r.err)
	}
	assert.Equal(t, 3.0, results[0].roots[0].Value)
	assert.Equal(t, -7.0, results[3].roots[0].Value)
}

func TestSolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solveAll(ctx, []string{"x - 1"}, "", symroot.DefaultConfig(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigSources(t *testing.T) {
	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "max_power_expansion: 16")

	out, err = run(t, "config", "show", "--max-power", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "max_power_expansion: 4")

	t.Setenv("SYMROOT_SIMPLIFY_MAX_POWER_EXPANSION", "2")
	out, err = run(t, "simplify", "(x + 1)^3")
	require.NoError(t, err)
	assert.Equal(t, "(x + 1)^3\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symroot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simplify:\n  fold_transcendental: false\n"), 0o600))

	out, err := run(t, "--config", path, "simplify", "sin(1)")
	require.NoError(t, err)
	assert.Equal(t, "sin(1)\n", out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "simplify", "x")
	assert.ErrorContains(t, err, "read config")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelInfo), tt.in)
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"inf", math.Inf(1)},
		{"+inf", math.Inf(1)},
		{"-INF", math.Inf(-1)},
		{"2.5", 2.5},
		{"-3", -3},
	}
	for _, tt := range tests {
		got, err := parseBound(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRenderDiffPlain(t *testing.T) {
	st := newStyles(&bytes.Buffer{}, false)
	assert.Equal(t, "sin(x)*[-2*3-]{+6+}", renderDiff("sin(x)*2*3", "sin(x)*6", st))
	assert.Equal(t, "x", renderDiff("x", "x", st))
}
