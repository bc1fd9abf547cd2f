package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/symroot"
	"github.com/njchilds90/symroot/poly"
	"github.com/njchilds90/symroot/roots"
)

// solved is the outcome for one input line of a batch.
type solved struct {
	src   string
	roots []roots.Root
	err   error
}

func newRootsCmd(a *app) *cobra.Command {
	var (
		varName  string
		file     string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "roots [EXPR]",
		Short: "Distinct real roots of a polynomial",
		Long: `Distinct real roots of a polynomial, sorted ascending.

Degrees up to three use closed forms. Higher degrees are isolated with a
Sturm chain and refined by continued-fraction steps. With --file every
non-empty line not starting with # is solved, --parallel at a time.`,
		Example: `  symroot roots "x^3 - 6*x^2 + 11*x - 6"
  symroot roots --file polys.txt --parallel 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var srcs []string
			switch {
			case file != "":
				lines, err := readExprFile(file)
				if err != nil {
					return err
				}
				srcs = lines
			case len(args) > 0:
				srcs = []string{strings.Join(args, " ")}
			default:
				return fmt.Errorf("need an expression or --file")
			}
			if parallel <= 0 {
				parallel = a.v.GetInt(parallelKey)
			}

			results, err := solveAll(cmd.Context(), srcs, varName, a.config(), parallel)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					a.log.Warn("roots", "expr", r.src, "error", r.err)
				}
			}
			if len(results) == 1 && results[0].err != nil {
				return results[0].err
			}
			if err := printRoots(cmd.OutOrStdout(), results, len(results) > 1); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&varName, "var", "", "polynomial variable (default: the only free variable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "solve one expression per line")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "concurrent solves for --file")
	return cmd
}

func readExprFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// solveAll solves each source independently. Per-expression failures are
// reported in the results; only cancellation fails the batch.
func solveAll(ctx context.Context, srcs []string, v string, cfg symroot.Config, parallel int) ([]solved, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]solved, len(srcs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(parallel, 1))
	for i, src := range srcs {
		i, src := i, src
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i].src = src
			e, err := symroot.Parse(src)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].roots, results[i].err = symroot.RealRoots(e, v, cfg)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printRoots(w io.Writer, results []solved, batch bool) error {
	header := []string{"Root", "Interval", "Exact"}
	align := []int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER}
	if batch {
		header = append([]string{"Expression"}, header...)
		align = append([]int{tablewriter.ALIGN_LEFT}, align...)
	}

	var rows [][]string
	for _, res := range results {
		if res.err != nil {
			if batch {
				rows = append(rows, []string{res.src, "error", res.err.Error(), ""})
			}
			continue
		}
		if len(res.roots) == 0 && batch {
			rows = append(rows, []string{res.src, "none", "", ""})
		}
		for _, r := range res.roots {
			row := []string{
				strconv.FormatFloat(r.Value, 'g', 12, 64),
				fmt.Sprintf("[%s, %s]", poly.FormatRat(r.Lo), poly.FormatRat(r.Hi)),
				strconv.FormatBool(r.Exact),
			}
			if batch {
				row = append([]string{res.src}, row...)
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no real roots")
		return err
	}
	_, err := io.WriteString(w, renderTable(header, rows, align))
	return err
}

func parseBound(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bound %q: %w", s, err)
	}
	return x, nil
}

func newCountCmd(a *app) *cobra.Command {
	var varName, from, to string
	cmd := &cobra.Command{
		Use:   "count EXPR",
		Short: "Number of distinct real roots in (a, b]",
		Example: `  symroot count "x^2 - 1" --from 0 --to 2
  symroot count "x^5 - x + 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			lo, err := parseBound(from)
			if err != nil {
				return err
			}
			hi, err := parseBound(to)
			if err != nil {
				return err
			}
			n, err := symroot.CountRoots(e, varName, lo, hi)
			if err != nil {
				return err
			}
			a.log.Debug("count", "expr", e.String(), "from", from, "to", to, "roots", n)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
	cmd.Flags().StringVar(&varName, "var", "", "polynomial variable")
	cmd.Flags().StringVar(&from, "from", "-inf", "lower bound, excluded")
	cmd.Flags().StringVar(&to, "to", "inf", "upper bound, included")
	return cmd
}

func newSturmCmd(a *app) *cobra.Command {
	var varName string
	cmd := &cobra.Command{
		Use:   "sturm EXPR",
		Short: "Sturm sequence of the squarefree part",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseArg(args)
			if err != nil {
				return err
			}
			chain, err := symroot.SturmChain(e, varName)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			st := a.styles(w)
			for i, p := range chain.Polys() {
				st.field(w, fmt.Sprintf("p%d", i), p.String())
			}
			st.field(w, "real roots", strconv.Itoa(chain.TotalRoots()))
			return nil
		},
	}
	cmd.Flags().StringVar(&varName, "var", "", "polynomial variable")
	return cmd
}
