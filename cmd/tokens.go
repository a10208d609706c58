package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler/lexer"
)

// tokens: dump the token stream, one token per line
var TokensCmd = &cobra.Command{
	Use:   "tokens <file|->",
	Short: "Dump the token stream",
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

		toks, err := lexer.Tokenize(text)
		out := cmd.OutOrStdout()
		for _, tok := range toks {
			fmt.Fprintf(out, "%s %s %s\n", tok.Pos(), tok.Type, tok.Literal)
		}
		if err != nil {
			return report(cmd, src, err, settings.Color)
		}
		return nil
	},
}
