package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/compiler/lexer"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

//go:embed templates/*
var templates embed.FS

var initDir string

// init: scaffold a new program
var InitCmd = &cobra.Command{
	Use:   "init [program-name]",
	Short: "Scaffold a new program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "Main"
		if len(args) == 1 {
			name = args[0]
		}
		if !validProgramName(name) {
			return fmt.Errorf("%q is not a valid program name", name)
		}

		path := filepath.Join(initDir, name+".pas")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		tpl, err := template.ParseFS(templates, "templates/program.pas.tpl")
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, struct{ Name string }{name}); err != nil {
			return err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolded %s\n", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().StringVarP(&initDir, "dir", "d", ".", "directory to create the program in")
}

// validProgramName reports whether name lexes as a single identifier.
func validProgramName(name string) bool {
	toks, err := lexer.Tokenize(name)
	return err == nil && len(toks) == 2 && toks[0].Type == token.TokenIdent && toks[0].Literal == name
}
