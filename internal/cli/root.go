// Package cli implements the symroot command line.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njchilds90/symroot"
)

const rootLongDescription = `symroot simplifies, differentiates, integrates and expands symbolic
expressions, and finds the real roots of polynomials exactly where it can.

Expressions use infix notation:
  x^2 - 2*x + 1      sin(x)*exp(-x)      a[1]*x + a[2]      pm(x)

Settings come from flags, SYMROOT_* environment variables or symroot.yaml.`

// app is the state shared by all commands of one root.
type app struct {
	v       *viper.Viper
	log     *slog.Logger
	cfgPath string
	noColor bool
}

func (a *app) config() symroot.Config { return engineConfig(a.v) }

func (a *app) styles(w io.Writer) styles { return newStyles(w, a.noColor) }

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: newViper(), log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:           "symroot",
		Short:         "Symbolic algebra and real root isolation",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(a.v, a.cfgPath); err != nil {
				return err
			}
			a.log = newLogger(a.v)
			a.log.Debug("command", "name", cmd.CommandPath(), "config", a.v.ConfigFileUsed())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	configureRootFlags(root, a)

	root.AddCommand(
		newSimplifyCmd(a),
		newDiffCmd(a),
		newIntegrateCmd(a),
		newSeriesCmd(a),
		newEvalCmd(a),
		newRootsCmd(a),
		newCountCmd(a),
		newSturmCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func configureRootFlags(cmd *cobra.Command, a *app) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgPath, configFlagName, "", "config file (default ./symroot.yaml)")
	pf.BoolVar(&a.noColor, noColorFlagName, false, "disable colored output")

	pf.Bool(verboseFlagName, false, "log at debug level")
	bindFlagToConfig(a.v, pf.Lookup(verboseFlagName), logVerboseKey)
	pf.String("log-file", defaultLogFilename, "log file path")
	bindFlagToConfig(a.v, pf.Lookup("log-file"), logFilenameKey)

	pf.Int("max-power", symroot.DefaultConfig().MaxPowerExpansion, "largest exponent expanded into a polynomial")
	bindFlagToConfig(a.v, pf.Lookup("max-power"), maxPowerKey)
	pf.Bool("fold", true, "fold transcendental constants such as sin(1) to floats")
	bindFlagToConfig(a.v, pf.Lookup("fold"), foldKey)
	pf.Float64("tolerance", symroot.DefaultConfig().Roots.Tolerance, "root refinement tolerance")
	bindFlagToConfig(a.v, pf.Lookup("tolerance"), toleranceKey)
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
