// Package editor implements the rule authoring state machine: an edit
// session that turns user edits into a validated, serializable rule
// document and keeps the derived views (field catalog, operator sets,
// technique pool) synchronized while editing.
//
// The session is exclusively owned by one editing flow; nothing here is
// shared across sessions and nothing persists partial edits. All external
// calls go through the small collaborator interfaces below, defined on the
// consumer side so the session can be driven by any client implementation.
package editor

import (
	"context"

	"argus/core"
)

// FieldLister lists the available fields of one datasource.
type FieldLister interface {
	ListFields(ctx context.Context, datasource string) ([]core.FieldCatalogEntry, error)
}

// FieldSuggester returns example values for a field, used as an
// autocomplete source. Advisory only; it never constrains user input.
type FieldSuggester interface {
	SuggestFieldValues(ctx context.Context, field string) ([]string, error)
}

// RuleLister returns the rule summaries the rule-chained trigger can
// reference.
type RuleLister interface {
	ListRules(ctx context.Context) ([]core.RuleSummary, error)
}

// TacticLister serves the ATT&CK knowledge base snapshot.
type TacticLister interface {
	ListAttackTactics(ctx context.Context, matrix string, includeTechniques bool) ([]core.Tactic, error)
}

// AlertHistorian pages through a rule's historical evaluation alerts.
type AlertHistorian interface {
	ListAlertsForRule(ctx context.Context, id string, page int) (core.AlertPage, error)
}

// QueryMode is how the EQL query input is presented.
type QueryMode string

const (
	// QueryModeBuilder is the structured clause builder.
	QueryModeBuilder QueryMode = "builder"
	// QueryModeRaw is the free-text query input. Hydrating an EQL rule
	// always forces raw mode: the builder state is not reconstructible
	// from a free-text query.
	QueryModeRaw QueryMode = "raw"
)

// queryModeKey is the session-store flag remembering the author's last
// query input mode across sessions.
const queryModeKey = "eql_query_mode"
