package cmd

import (
	"fmt"
	"strings"

	"argus/core"
	"argus/editor"
	"argus/preview"
)

// renderValidateResult prints lint findings for one rule file.
func renderValidateResult(path string, result editor.ValidateResult) {
	if result.Valid && len(result.Warnings) == 0 {
		successColor.Printf("✓ %s is valid\n", path)
		return
	}

	if result.Valid {
		warningColor.Printf("⚠ %s is valid with warnings\n", path)
	} else {
		errorColor.Printf("✗ %s is invalid\n", path)
	}
	for _, msg := range result.Errors {
		errorColor.Printf("  error: %s\n", msg)
	}
	for _, msg := range result.Warnings {
		warningColor.Printf("  warning: %s\n", msg)
	}
}

// renderPreviewOutcome prints preview hits grouped by severity.
func renderPreviewOutcome(doc core.RuleDocument, outcome *preview.PreviewOutcome, showOutput bool) {
	headerColor.Printf("  Preview: %s (%s, %s)\n", doc.Name, doc.Kind, doc.Timeframe)
	fmt.Println(strings.Repeat("=", 60))

	renderHits("Alerts", outcome.Alerts)
	renderHits("Alarms", outcome.Alarms)

	if len(outcome.Alerts) == 0 && len(outcome.Alarms) == 0 {
		infoColor.Println("No hits in the evaluated window.")
	}

	if showOutput && outcome.Output != "" {
		fmt.Println()
		headerColor.Println("  Translated query")
		fmt.Println(outcome.Output)
	}
}

func renderHits(title string, hits []core.PreviewHit) {
	if len(hits) == 0 {
		return
	}
	fmt.Printf("\n%s (%d)\n", title, len(hits))
	fmt.Printf("%-40s %s\n", "GROUP", "RESULT")
	fmt.Println(strings.Repeat("-", 60))
	for _, hit := range hits {
		fmt.Printf("%-40s %v\n", truncate(hit.GroupBy, 40), hit.Result)
	}
}

// renderCatalogTable prints the merged field catalog.
func renderCatalogTable(catalog []core.FieldCatalogEntry) {
	fmt.Printf("%-50s %s\n", "FIELD", "TYPE")
	fmt.Println(strings.Repeat("-", 60))
	for _, entry := range catalog {
		fmt.Printf("%-50s %s\n", entry.Field, entry.Type)
	}
	fmt.Printf("\nTotal fields: %d\n", len(catalog))
}

// renderSeries prints a profiling or lookup series with any condition
// limits alongside, since the terminal has no chart overlay.
func renderSeries(outcome *preview.SeriesOutcome) {
	if len(outcome.Points) == 0 {
		infoColor.Println("No data points in the profiled window.")
		return
	}

	fmt.Printf("%-25s %s\n", "DATE", "VALUE")
	fmt.Println(strings.Repeat("-", 45))
	for _, point := range outcome.Points {
		fmt.Printf("%-25s %g\n", point.Date, point.Value)
	}

	for _, line := range outcome.Thresholds {
		warningColor.Printf("%s threshold: %g\n", line.Severity, line.Limit)
	}
}

// renderTacticsTable prints the ATT&CK tactics with their technique counts.
func renderTacticsTable(tactics []core.Tactic, showTechniques bool) {
	fmt.Printf("%-12s %-40s %s\n", "ID", "NAME", "TECHNIQUES")
	fmt.Println(strings.Repeat("-", 64))
	for _, tactic := range tactics {
		fmt.Printf("%-12s %-40s %d\n", tactic.ID, truncate(tactic.Name, 40), len(tactic.Techniques))
		if showTechniques {
			for _, technique := range tactic.Techniques {
				fmt.Printf("  %-12s %s\n", technique.ID, technique.Name)
			}
		}
	}
	fmt.Printf("\nTotal tactics: %d\n", len(tactics))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
