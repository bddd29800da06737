package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAttackCmd creates the root attack command.
func NewAttackCmd() *cobra.Command {
	attackCmd := &cobra.Command{
		Use:   "attack",
		Short: "Browse the ATT&CK knowledge base",
	}

	attackCmd.AddCommand(newAttackTacticsCmd())

	return attackCmd
}

// newAttackTacticsCmd creates the 'tactics' subcommand
func newAttackTacticsCmd() *cobra.Command {
	var showTechniques bool

	cmd := &cobra.Command{
		Use:   "tactics",
		Short: "List ATT&CK tactics served by the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			tactics, err := app.Client.ListAttackTactics(ctx, app.Config.Attack.Matrix, true)
			if err != nil {
				return fmt.Errorf("failed to list tactics: %w", err)
			}

			if outputJSON {
				return outputAsJSON(tactics)
			}

			renderTacticsTable(tactics, showTechniques)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTechniques, "techniques", false, "List each tactic's techniques")

	return cmd
}
