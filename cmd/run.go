package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler"
	"github.com/arnavsurve/minipas/internal/config"
)

var (
	runTrace  bool
	runFormat string
)

// run: check and execute a program
var RunCmd = &cobra.Command{
	Use:   "run <file|->",
	Short: "Check and execute a program, printing its final variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("trace") {
			settings.Trace = runTrace
		}
		if cmd.Flags().Changed("format") {
			settings.Format = runFormat
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		src, text, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}

		opts := compiler.Options{}
		if settings.Trace {
			opts.Tracer = newLogTracer(cmd.ErrOrStderr(), settings.Color)
		}
		bindings, err := compiler.CompileAndRun(text, opts)
		if err != nil {
			return report(cmd, src, err, settings.Color)
		}
		return writeBindings(cmd.OutOrStdout(), bindings, settings.Format)
	},
}

func init() {
	RunCmd.Flags().BoolVar(&runTrace, "trace", false, "log scope activity to stderr")
	RunCmd.Flags().StringVar(&runFormat, "format", config.OutputText, "output format: text, json or yaml")
}
