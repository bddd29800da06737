// Package cmd provides the command-line interface for the Argus rule
// editor: authoring, linting, previewing and pushing detection rules
// against a running Argus backend.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"argus/bootstrap"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// Global flags
var (
	outputJSON bool
	noColor    bool
	quiet      bool
)

// defaultTimeout bounds every CLI operation end to end.
const defaultTimeout = 5 * time.Minute

// NewRootCmd creates the argus root command with all subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "argus",
		Short: "Author and preview Argus detection rules",
		Long: `Author, lint, preview and push Argus detection rules from the
command line.

Rules are YAML documents describing either a threshold rule (aggregate
conditions over filtered events) or an EQL rule (a free-text event query
language expression). Commands talk to a running Argus backend; set
ARGUS_API_URL or api.base_url in config.yaml to point at it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")

	rootCmd.AddCommand(NewRuleCmd())
	rootCmd.AddCommand(NewFieldsCmd())
	rootCmd.AddCommand(NewAttackCmd())
	rootCmd.AddCommand(NewDatasourcesCmd())

	return rootCmd
}

// initApp builds the application wiring shared by all subcommands. The
// returned cleanup flushes logs and must run before exit.
func initApp() (*bootstrap.App, func(), error) {
	app, err := bootstrap.NewApp()
	if err != nil {
		return nil, nil, err
	}
	return app, app.Shutdown, nil
}

// outputAsJSON renders v as indented JSON on stdout.
func outputAsJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
