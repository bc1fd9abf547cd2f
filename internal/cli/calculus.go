package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symroot"
)

// format selects how an expression result is printed.
type format struct {
	latex bool
	json  bool
}

func (f *format) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.latex, "latex", false, "print LaTeX")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the JSON expression tree")
}

func (f *format) print(w io.Writer, e symroot.Expr) error {
	switch {
	case f.json:
		s, err := symroot.ToJSON(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case f.latex:
		_, err := fmt.Fprintln(w, symroot.LaTeX(e))
		return err
	}
	_, err := fmt.Fprintln(w, symroot.String(e))
	return err
}

func parseArg(args []string) (symroot.Expr, error) {
	return symroot.Parse(strings.Join(args, " "))
}

func newSimplifyCmd(a *app) *cobra.Command {
	var (
		out  format
		diff bool
	)
	cmd := &cobra.Command{
		Use:   "simplify EXPR",
		Short: "Rewrite an expression to canonical form",
		Example: `  symroot simplify "(x+1)+(2+3)"
  symroot simplify --diff "2*sin(x)*3 - 0"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			s := symroot.SimplifyWith(e, a.config())
			a.log.Debug("simplify", "in", e.String(), "out", s.String())
			if diff {
				w := cmd.OutOrStdout()
				_, err := fmt.Fprintln(w, renderDiff(e.String(), s.String(), a.styles(w)))
				return err
			}
			return out.print(cmd.OutOrStdout(), s)
		},
	}
	out.register(cmd)
	cmd.Flags().BoolVar(&diff, "diff", false, "show what simplification changed")
	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		out     format
		varName string
		order   int
	)
	cmd := &cobra.Command{
		Use:     "diff EXPR",
		Aliases: []string{"d"},
		Short:   "Differentiate an expression",
		Example: `  symroot diff "x^2*sin(x)"
  symroot diff -n 3 --var t "exp(2*t)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if order < 0 {
				return fmt.Errorf("order must be non-negative, got %d", order)
			}
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			cfg := a.config()
			if err := cfg.CheckOrder(order); err != nil {
				return err
			}
			for i := 0; i < order; i++ {
				e = symroot.SimplifyWith(symroot.Derivative(e, varName), cfg)
			}
			return out.print(cmd.OutOrStdout(), e)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&varName, "var", "x", "variable to differentiate by")
	cmd.Flags().IntVarP(&order, "order", "n", 1, "number of derivatives")
	return cmd
}

func newIntegrateCmd(a *app) *cobra.Command {
	var (
		out     format
		varName string
	)
	cmd := &cobra.Command{
		Use:     "integrate EXPR",
		Aliases: []string{"int"},
		Short:   "Antiderivative of an expression",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			res, err := symroot.Integrate(e, varName)
			if err != nil {
				a.log.Info("integrate", "expr", e.String(), "error", err)
				return err
			}
			return out.print(cmd.OutOrStdout(), res)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&varName, "var", "x", "variable of integration")
	return cmd
}

func newSeriesCmd(a *app) *cobra.Command {
	var (
		out     format
		varName string
		at      string
		order   int
	)
	cmd := &cobra.Command{
		Use:   "series EXPR",
		Short: "Taylor expansion in nested form",
		Example: `  symroot series "exp(x)" --order 4
  symroot series "ln(x)" --at 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			if err := a.config().CheckOrder(order); err != nil {
				return err
			}
			point, err := symroot.Parse(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			a.log.Debug("series", "expr", e.String(), "at", at, "order", order)
			return out.print(cmd.OutOrStdout(), symroot.TaylorSeries(e, varName, point, order))
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&varName, "var", "x", "expansion variable")
	cmd.Flags().StringVar(&at, "at", "0", "expansion point")
	cmd.Flags().IntVar(&order, "order", 5, "highest power kept")
	return cmd
}

func newEvalCmd(a *app) *cobra.Command {
	var set map[string]string
	cmd := &cobra.Command{
		Use:     "eval EXPR",
		Short:   "Evaluate an expression numerically",
		Example: `  symroot eval "a[1]*x^2" --set x=3 --set a[1]=0.5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			env := make(map[string]float64, len(set))
			for k, raw := range set {
				x, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("--set %s: %w", k, err)
				}
				env[k] = x
			}
			x, err := symroot.Eval(symroot.SimplifyWith(e, a.config()), env)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(x, 'g', -1, 64))
			return err
		},
	}
	cmd.Flags().StringToStringVar(&set, "set", nil, "variable values, e.g. x=1.5")
	return cmd
}
