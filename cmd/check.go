package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler"
)

// check: parse and analyze without running
var CheckCmd = &cobra.Command{
	Use:   "check <file|->",
	Short: "Check a program without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		src, text, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}

		prog, err := compiler.Compile(text)
		if err != nil {
			return report(cmd, src, err, settings.Color)
		}
		if _, err := compiler.Analyze(prog, compiler.Options{}); err != nil {
			return report(cmd, src, err, settings.Color)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}
