package cmd

import (
	"fmt"
	"os"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler"
	"github.com/arnavsurve/minipas/internal/compiler/emitter"
	"github.com/arnavsurve/minipas/internal/compiler/lexer"
)

var (
	fmtWrite bool
	fmtDiff  bool
)

// fmt: re-emit a program in canonical layout
var FmtCmd = &cobra.Command{
	Use:   "fmt <file|->",
	Short: "Rewrite a program in canonical layout",
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
		out := emitter.Emit(prog)

		// The emitter works from the tree, which carries no comments.
		comments, err := lexer.ScanComments(text)
		if err != nil {
			return report(cmd, src, err, settings.Color)
		}
		if len(comments) > 0 {
			if fmtWrite && args[0] != "-" {
				return fmt.Errorf("refusing to rewrite %s: fmt would drop %d comment(s), the first at %s",
					args[0], len(comments), comments[0].Pos)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d comment(s) dropped from output\n", len(comments))
		}

		if fmtDiff {
			fmt.Fprint(cmd.OutOrStdout(), udiff.Unified(src.Filename+".orig", src.Filename, text, out))
		}
		if fmtDiff && !fmtWrite {
			return nil
		}
		if !fmtWrite || args[0] == "-" {
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	FmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the source file")
	FmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff against the source")
}
