package core

import (
	"encoding/json"
	"fmt"
)

// PreviewHit is one evaluation hit returned by the preview endpoint.
type PreviewHit struct {
	GroupBy string `json:"groupby,omitempty"`
	Result  string `json:"result"`
}

// PreviewResult buckets preview hits by the severity class they would
// produce.
type PreviewResult struct {
	Alert []PreviewHit `json:"alert,omitempty"`
	Alarm []PreviewHit `json:"alarm,omitempty"`
}

// PreviewResponse is the evaluator's answer to a preview request. Output
// carries the evaluator's raw query plan, kept opaque for display.
type PreviewResponse struct {
	Result PreviewResult   `json:"result"`
	Output json.RawMessage `json:"output"`
}

// PreviewPayload is the projection of a rule document sent to the
// evaluator for a non-persistent preview. ATT&CK tags are projected down
// to bare identifiers; the full tuples stay in the document.
type PreviewPayload struct {
	Kind        RuleKind   `json:"type"`
	Datasources []string   `json:"datasources"`
	Timeframe   Timeframe  `json:"timeframe"`
	Attack      *AttackIDs `json:"attack,omitempty"`

	// Threshold shape.
	GroupBy    []string       `json:"group_by,omitempty"`
	Filters    []FilterClause `json:"filters,omitempty"`
	Conditions *Conditions    `json:"conditions,omitempty"`

	// EQL shape.
	Query     string   `json:"query,omitempty"`
	AlertType Severity `json:"alert_type,omitempty"`
}

// PreviewPayloadFrom projects a rule document into the preview wire shape,
// branching exhaustively on the rule kind.
func PreviewPayloadFrom(doc RuleDocument) (PreviewPayload, error) {
	payload := PreviewPayload{
		Kind:        doc.Kind,
		Datasources: doc.Datasources,
		Timeframe:   doc.Timeframe,
	}
	if len(doc.Attack.Tactics) > 0 || len(doc.Attack.Techniques) > 0 {
		ids := doc.Attack.IDs()
		payload.Attack = &ids
	}

	switch doc.Kind {
	case RuleKindThreshold:
		payload.GroupBy = doc.GroupBy
		payload.Filters = doc.Filters
		payload.Conditions = doc.Conditions
		return payload, nil

	case RuleKindEQL:
		payload.Query = doc.Query
		payload.AlertType = doc.AlertType
		return payload, nil

	default:
		return PreviewPayload{}, fmt.Errorf("cannot preview rule of unknown kind %q", doc.Kind)
	}
}

// LookupRequest asks the evaluator for sample rows matching an EQL query.
type LookupRequest struct {
	Query       string    `json:"query"`
	Datasources []string  `json:"datasources"`
	Timeframe   Timeframe `json:"timeframe"`
}

// ProfileRequest asks the evaluator for a time-bucketed aggregate series
// over one field.
type ProfileRequest struct {
	Field       string            `json:"field"`
	Function    AggregateFunction `json:"func"`
	Window      ProfileWindow     `json:"ts"`
	Datasources []string          `json:"datasources"`
	Filters     []FilterClause    `json:"filters"`
}
