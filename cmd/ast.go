package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler"
)

// ast: print the parsed syntax tree
var AstCmd = &cobra.Command{
	Use:   "ast <file|->",
	Short: "Print the parsed syntax tree",
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
		fmt.Fprintln(cmd.OutOrStdout(), prog.String())
		return nil
	},
}
