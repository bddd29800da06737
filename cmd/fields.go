package cmd

import (
	"context"
	"fmt"
	"time"

	"argus/core"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// NewFieldsCmd creates the root fields command with all subcommands.
func NewFieldsCmd() *cobra.Command {
	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "Inspect datasource fields",
		Long:  "List the merged field catalog of one or more datasources, fetch value suggestions for a field, or profile a field's aggregate over time.",
	}

	fieldsCmd.AddCommand(newFieldsListCmd())
	fieldsCmd.AddCommand(newFieldsSuggestCmd())
	fieldsCmd.AddCommand(newFieldsProfileCmd())

	return fieldsCmd
}

// newFieldsListCmd creates the 'list' subcommand
func newFieldsListCmd() *cobra.Command {
	var (
		datasources []string
		function    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the merged field catalog",
		Long:    "Merge the field catalogs of the given datasources, first occurrence winning on duplicate names. With --func, narrow to the fields the aggregate function accepts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if len(datasources) == 0 {
				return fmt.Errorf("at least one --datasource is required")
			}

			sess := app.NewEditorSession()
			sess.SetDatasources(ctx, datasources)

			catalog := sess.Catalog()
			if function != "" {
				fn := core.AggregateFunction(function)
				if !fn.IsValid() {
					return fmt.Errorf("unknown aggregate function: %s", function)
				}
				catalog = sess.OptionsFor(fn)
			}

			if outputJSON {
				return outputAsJSON(catalog)
			}

			renderCatalogTable(catalog)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&datasources, "datasource", nil, "Datasource to include (repeatable)")
	cmd.Flags().StringVar(&function, "func", "", "Narrow to fields usable by this aggregate function")

	return cmd
}

// newFieldsSuggestCmd creates the 'suggest' subcommand
func newFieldsSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <field>",
		Short: "Fetch example values for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			values, err := app.Client.SuggestFieldValues(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch suggestions: %w", err)
			}

			if outputJSON {
				return outputAsJSON(values)
			}

			if len(values) == 0 {
				infoColor.Printf("No suggestions for field %s\n", args[0])
				return nil
			}
			for _, value := range values {
				fmt.Println(value)
			}
			return nil
		},
	}
}

// newFieldsProfileCmd creates the 'profile' subcommand
func newFieldsProfileCmd() *cobra.Command {
	var (
		datasources []string
		function    string
		window      string
	)

	cmd := &cobra.Command{
		Use:   "profile <field>",
		Short: "Profile a field's aggregate over time",
		Long:  "Fetch a time-bucketed series of the aggregate function applied to the field, the same data the editor charts when tuning condition limits.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			app, cleanup, err := initApp()
			if err != nil {
				return err
			}
			defer cleanup()

			if len(datasources) == 0 {
				return fmt.Errorf("at least one --datasource is required")
			}

			fn := core.AggregateFunction(function)
			if !fn.IsValid() {
				return fmt.Errorf("unknown aggregate function: %s", function)
			}
			win := core.ProfileWindow(window)
			if !win.IsValid() {
				return fmt.Errorf("unknown profiling window: %s (must be day, week or month)", window)
			}

			req := core.ProfileRequest{
				Field:       args[0],
				Function:    fn,
				Window:      win,
				Datasources: datasources,
			}

			var s *spinner.Spinner
			if !outputJSON && !quiet {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = " Profiling field..."
				s.Start()
			}

			outcome, err := app.NewReconciler().Profile(ctx, req, nil)

			if s != nil {
				s.Stop()
			}

			if err != nil {
				return fmt.Errorf("profiling failed: %w", err)
			}

			if outputJSON {
				return outputAsJSON(outcome)
			}

			renderSeries(outcome)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&datasources, "datasource", nil, "Datasource to profile against (repeatable)")
	cmd.Flags().StringVar(&function, "func", "count", "Aggregate function")
	cmd.Flags().StringVar(&window, "window", "day", "Bucketing window (day, week, month)")

	return cmd
}
