package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"argus/core"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// maxRuleFileSize guards against accidentally feeding a log file or event
// dump into the rule loader.
const maxRuleFileSize = 10 * 1024 * 1024 // 10MB

// loadRuleDocument reads a YAML rule document from disk.
func loadRuleDocument(path string) (core.RuleDocument, error) {
	var doc core.RuleDocument

	info, err := os.Stat(path)
	if err != nil {
		return doc, fmt.Errorf("failed to stat rule file: %w", err)
	}
	if info.Size() > maxRuleFileSize {
		return doc, fmt.Errorf("rule file %s exceeds %d bytes", path, maxRuleFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read rule file: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	return doc, nil
}

// NewRuleCmd creates the root rule command with all subcommands.
func NewRuleCmd() *cobra.Command {
	ruleCmd := &cobra.Command{
		Use:   "rule",
		Short: "Author, lint, preview and push detection rules",
		Long: `Work with detection rule documents: lint a local YAML rule, preview
its evaluation against live data, push it to the backend, show a stored
rule, or import a SIGMA rule as an EQL document.`,
	}

	ruleCmd.AddCommand(newRuleLintCmd())
	ruleCmd.AddCommand(newRulePreviewCmd())
	ruleCmd.AddCommand(newRulePushCmd())
	ruleCmd.AddCommand(newRuleShowCmd())
	ruleCmd.AddCommand(newRuleImportCmd())

	return ruleCmd
}

// newRuleLintCmd creates the 'lint' subcommand
func newRuleLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <rule-file>",
		Short: "Validate a rule document",
		Long:  "Load a YAML rule document and report structural errors and authoring warnings without contacting the backend evaluator.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := loadRuleDocument(args[0])
			if err != nil {
				return err
			}

			sess := app.NewEditorSession()
			if err := sess.Hydrate(ctx, doc); err != nil {
				return fmt.Errorf("failed to load rule: %w", err)
			}

			result := sess.Validate()
			if outputJSON {
				if err := outputAsJSON(result); err != nil {
					return err
				}
			} else {
				renderValidateResult(args[0], result)
			}

			if !result.Valid {
				return fmt.Errorf("rule %s is invalid", args[0])
			}
			return nil
		},
	}
}

// newRulePreviewCmd creates the 'preview' subcommand
func newRulePreviewCmd() *cobra.Command {
	var showOutput bool

	cmd := &cobra.Command{
		Use:   "preview <rule-file>",
		Short: "Evaluate a rule against live data without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := loadRuleDocument(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return fmt.Errorf("rule is not previewable: %w", err)
			}

			var s *spinner.Spinner
			if !outputJSON && !quiet {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = " Evaluating rule..."
				s.Start()
			}

			outcome, err := app.NewReconciler().Preview(ctx, doc)

			if s != nil {
				s.Stop()
			}

			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}

			if outputJSON {
				return outputAsJSON(outcome)
			}

			renderPreviewOutcome(doc, outcome, showOutput)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showOutput, "show-query", false, "Print the evaluator's translated query")

	return cmd
}

// newRulePushCmd creates the 'push' subcommand
func newRulePushCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "push <rule-file>",
		Short: "Create or update a rule on the backend",
		Long:  "Validate a rule document and push it to the backend. A document without a uuid is created; one with a uuid updates the stored rule.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := loadRuleDocument(args[0])
			if err != nil {
				return err
			}

			sess := app.NewEditorSession()
			if err := sess.Hydrate(ctx, doc); err != nil {
				return fmt.Errorf("failed to load rule: %w", err)
			}
			result := sess.Validate()
			if !result.Valid {
				renderValidateResult(args[0], result)
				return fmt.Errorf("rule %s is invalid, not pushing", args[0])
			}
			if len(result.Warnings) > 0 && !force {
				renderValidateResult(args[0], result)
				return fmt.Errorf("rule has warnings, re-run with --force to push anyway")
			}

			if doc.ID == "" {
				doc.ID = uuid.New().String()
				if err := app.Client.CreateRule(ctx, doc); err != nil {
					return fmt.Errorf("failed to create rule: %w", err)
				}
				if !quiet {
					successColor.Printf("✓ Created rule %s (%s)\n", doc.Name, doc.ID)
				}
				return nil
			}

			if err := app.Client.UpdateRule(ctx, doc.ID, doc); err != nil {
				return fmt.Errorf("failed to update rule: %w", err)
			}
			if !quiet {
				successColor.Printf("✓ Updated rule %s (%s)\n", doc.Name, doc.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Push even when lint warnings are present")

	return cmd
}

// newRuleShowCmd creates the 'show' subcommand
func newRuleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <rule-id>",
		Short: "Fetch a stored rule and print it as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := app.Client.GetRule(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get rule: %w", err)
			}

			if outputJSON {
				return outputAsJSON(doc)
			}

			data, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to render rule: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

// newRuleImportCmd creates the 'import' subcommand
func newRuleImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <sigma-file>",
		Short: "Convert a SIGMA rule into an EQL rule skeleton",
		Long:  "Send a SIGMA YAML rule to the backend converter and print the resulting EQL rule document. The output is a starting point, not a finished rule; edit and push it separately.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("failed to stat sigma file: %w", err)
			}
			if info.Size() > maxRuleFileSize {
				return fmt.Errorf("sigma file %s exceeds %d bytes", args[0], maxRuleFileSize)
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read sigma file: %w", err)
			}

			conversion, err := app.Client.ImportSigmaRule(ctx, filepath.Base(args[0]), content)
			if err != nil {
				return fmt.Errorf("sigma conversion failed: %w", err)
			}

			doc := core.RuleDocument{
				Kind:        core.RuleKindEQL,
				Query:       conversion.Query,
				Datasources: conversion.Datasources,
				Timeframe:   core.Timeframe5m,
				AlertType:   core.SeverityAlert,
			}

			if outputJSON {
				return outputAsJSON(doc)
			}

			data, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to render rule: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}
