package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDatasourcesCmd creates the datasources command.
func NewDatasourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasources",
		Short: "List the datasources the backend manages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			datasources, err := app.Client.ListDatasources(ctx)
			if err != nil {
				return fmt.Errorf("failed to list datasources: %w", err)
			}

			if outputJSON {
				return outputAsJSON(datasources)
			}

			for _, ds := range datasources {
				fmt.Println(ds.Name)
			}
			return nil
		},
	}
}
