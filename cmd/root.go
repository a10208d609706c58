package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minipas/internal/config"
	"github.com/arnavsurve/minipas/internal/feedback"
)

var (
	configPath string
	noColor    bool
)

// errReported marks an error whose diagnostic was already written.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "minipas",
	Short: "minipas: a checker and interpreter for a small Pascal subset",
	Long: `minipas lexes, parses, scope-checks and interprets Pascal-subset programs.

Commands:
  init    Scaffold a new program
  run     Check and execute a program, printing its final variables
  check   Check a program without running it
  tokens  Dump the token stream
  ast     Print the parsed syntax tree
  fmt     Rewrite a program in canonical layout
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, feedback.Render(nil, err, false))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (.toml or .json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(InitCmd, RunCmd, CheckCmd, TokensCmd, AstCmd, FmtCmd)
}

// loadSettings resolves settings from --config or the config directory,
// then applies the persistent flags.
func loadSettings() (config.Settings, error) {
	var (
		settings config.Settings
		err      error
	)
	if configPath != "" {
		settings, err = config.LoadFile(configPath)
	} else {
		settings, _, err = config.LoadSettings()
	}
	if err != nil {
		return config.Settings{}, err
	}
	if noColor {
		settings.Color = false
	}
	return settings, nil
}

// readSource reads the program named by arg. "-" reads standard input.
func readSource(cmd *cobra.Command, arg string) (*feedback.Source, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return feedback.NewSource("<stdin>", string(data)), string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", arg, err)
	}
	return feedback.NewSource(arg, string(data)), string(data), nil
}

// report writes err as a rendered diagnostic and returns errReported.
func report(cmd *cobra.Command, src *feedback.Source, err error, withColor bool) error {
	fmt.Fprintln(cmd.ErrOrStderr(), feedback.Render(src, err, withColor))
	return errReported
}
