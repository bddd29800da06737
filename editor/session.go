package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"argus/core"
	"argus/notify"
	"argus/session"
)

// suggestionCacheSize bounds the per-session field suggestion cache.
const suggestionCacheSize = 128

// Dependencies are the collaborators and capabilities injected into a
// session. Fields left nil disable the corresponding fetch (the session
// stays usable offline for pure model editing).
type Dependencies struct {
	Fields      FieldLister
	Suggestions FieldSuggester
	Rules       RuleLister
	Tactics     TacticLister
	History     AlertHistorian

	Notifier notify.Notifier
	Store    session.Store
	Logger   *zap.SugaredLogger

	// AttackMatrix selects the knowledge base matrix, e.g. "ics".
	AttackMatrix string
}

// Session holds the full editing state of one rule document. It exists
// only for the duration of an edit and is discarded on close; editing an
// existing rule rehydrates a fresh session from the persisted document.
type Session struct {
	id   string
	deps Dependencies

	// Plain document attributes.
	ruleID       string
	name         string
	description  string
	kind         core.RuleKind
	datasources  []string
	timeframe    core.Timeframe
	risk         string // raw user input, coerced on assemble
	trigger      core.TriggerPolicy
	intelligence core.Intelligence

	// Threshold shape.
	groupBy    []string
	filters    []core.FilterClause
	conditions core.Conditions

	// EQL shape.
	query     string
	alertType core.Severity
	queryMode QueryMode

	// Derived views.
	catalog        []core.FieldCatalogEntry
	tactics        []core.Tactic
	techniquePool  []core.Technique
	selected       core.AttackSelection
	candidateRules []core.RuleSummary
	history        core.AlertPage

	suggestions *lru.Cache[string, []string]
	validate    *validator.Validate
}

// NewSession creates an empty edit session for a new rule.
func NewSession(deps Dependencies) *Session {
	if deps.Notifier == nil {
		deps.Notifier = notify.NopNotifier{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}

	cache, _ := lru.New[string, []string](suggestionCacheSize)

	s := &Session{
		id:          uuid.NewString(),
		deps:        deps,
		trigger:     core.TriggerPolicy{},
		alertType:   core.SeverityAlert,
		queryMode:   QueryModeRaw,
		suggestions: cache,
		validate:    validator.New(),
	}

	if deps.Store != nil {
		if mode, ok := deps.Store.Get(queryModeKey); ok && QueryMode(mode) == QueryModeBuilder {
			s.queryMode = QueryModeBuilder
		}
	}
	return s
}

// ID returns the session identifier, used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Kind returns the rule kind being edited.
func (s *Session) Kind() core.RuleKind {
	return s.kind
}

// SetKind switches the rule kind. No migration is attempted between kinds;
// the inactive shape's state is simply not assembled.
func (s *Session) SetKind(kind core.RuleKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown rule kind: %s", kind)
	}
	s.kind = kind
	return nil
}

// SetName sets the rule name.
func (s *Session) SetName(name string) {
	s.name = name
}

// SetDescription sets the rule description.
func (s *Session) SetDescription(desc string) {
	s.description = desc
}

// SetTimeframe sets the lookback token.
func (s *Session) SetTimeframe(tf core.Timeframe) error {
	if !tf.IsValid() {
		return fmt.Errorf("unknown timeframe: %s", tf)
	}
	s.timeframe = tf
	return nil
}

// SetRisk records the risk score as typed by the user. Coercion to an
// integer happens on assemble; the backend rejects documents it cannot use.
func (s *Session) SetRisk(risk string) {
	s.risk = risk
}

// SetIntelligence sets the analyst note and policy action.
func (s *Session) SetIntelligence(intel core.Intelligence) {
	s.intelligence = intel
}

// SetQuery sets the raw EQL query text.
func (s *Session) SetQuery(query string) {
	s.query = query
}

// SetAlertType sets the severity class an EQL match produces.
func (s *Session) SetAlertType(sev core.Severity) error {
	if !sev.IsValid() {
		return fmt.Errorf("unknown severity: %s", sev)
	}
	s.alertType = sev
	return nil
}

// QueryMode returns the current EQL input mode.
func (s *Session) QueryMode() QueryMode {
	return s.queryMode
}

// SetQueryMode switches the EQL input mode and remembers the preference.
func (s *Session) SetQueryMode(mode QueryMode) {
	s.queryMode = mode
	if s.deps.Store != nil {
		if err := s.deps.Store.Set(queryModeKey, string(mode)); err != nil {
			s.deps.Logger.Debugw("failed to persist query mode", "error", err)
		}
	}
}

// Datasources returns the selected datasource identifiers.
func (s *Session) Datasources() []string {
	out := make([]string, len(s.datasources))
	copy(out, s.datasources)
	return out
}

// SetDatasources replaces the datasource set and rebuilds the field
// catalog for it.
func (s *Session) SetDatasources(ctx context.Context, datasources []string) {
	s.datasources = make([]string, len(datasources))
	copy(s.datasources, datasources)
	s.RebuildCatalog(ctx)
}

// SetGroupBy replaces the grouping field list.
func (s *Session) SetGroupBy(fields []string) {
	s.groupBy = make([]string, len(fields))
	copy(s.groupBy, fields)
}

// GroupBy returns the grouping field list.
func (s *Session) GroupBy() []string {
	out := make([]string, len(s.groupBy))
	copy(out, s.groupBy)
	return out
}

// History returns the last fetched page of the rule's alert history.
func (s *Session) History() core.AlertPage {
	return s.history
}

// RefreshHistory fetches one page of the rule's historical alerts. A read,
// not a mutation of the document; failures leave the prior page intact.
func (s *Session) RefreshHistory(ctx context.Context, page int) {
	if s.deps.History == nil || s.ruleID == "" {
		return
	}
	h, err := s.deps.History.ListAlertsForRule(ctx, s.ruleID, page)
	if err != nil {
		s.deps.Logger.Warnw("failed to fetch rule alert history", "rule", s.ruleID, "error", err)
		s.deps.Notifier.Error("Couldn't retrieve rule alerts")
		return
	}
	s.history = h
}

// SigmaImport is the result of a one-shot sigma rule conversion.
type SigmaImport struct {
	Query       string   `json:"query"`
	Datasources []string `json:"datasources"`
}

// ApplySigmaImport feeds a converted sigma rule into the session: the rule
// becomes an EQL rule in raw mode with the converted query and datasources.
func (s *Session) ApplySigmaImport(ctx context.Context, imp SigmaImport) {
	s.kind = core.RuleKindEQL
	s.query = imp.Query
	s.SetQueryMode(QueryModeRaw)
	s.SetDatasources(ctx, imp.Datasources)
}

// parseRisk coerces the raw risk input to an integer. Non-numeric input
// yields zero; the backend is the authority on rejecting invalid documents.
func parseRisk(raw string) int {
	risk, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return risk
}

// Assemble produces the rule document for the current editor state,
// branching exhaustively on the rule kind. The returned document is
// detached from the session: later edits do not mutate it.
func (s *Session) Assemble() (core.RuleDocument, error) {
	doc := core.RuleDocument{
		ID:           s.ruleID,
		Name:         s.name,
		Description:  s.description,
		Kind:         s.kind,
		Datasources:  s.Datasources(),
		Timeframe:    s.timeframe,
		Risk:         parseRisk(s.risk),
		Trigger:      s.trigger,
		Intelligence: s.intelligence,
		Attack:       s.Selection(),
	}

	switch s.kind {
	case core.RuleKindThreshold:
		doc.GroupBy = s.GroupBy()
		doc.Filters = s.Filters()
		conditions := s.Conditions()
		doc.Conditions = &conditions
		return doc, nil

	case core.RuleKindEQL:
		doc.Query = s.query
		doc.AlertType = s.alertType
		return doc, nil

	default:
		return core.RuleDocument{}, fmt.Errorf("cannot assemble rule of unknown kind %q", s.kind)
	}
}

// Hydrate loads the session from a persisted document: the inverse of
// Assemble. It rebuilds the field catalog for the document's datasources
// and fetches the first page of the rule's alert history. EQL rules always
// open in raw query mode.
func (s *Session) Hydrate(ctx context.Context, doc core.RuleDocument) error {
	if !doc.Kind.IsValid() {
		return fmt.Errorf("cannot hydrate rule of unknown kind %q", doc.Kind)
	}

	s.ruleID = doc.ID
	s.name = doc.Name
	s.description = doc.Description
	s.kind = doc.Kind
	s.timeframe = doc.Timeframe
	s.risk = strconv.Itoa(doc.Risk)
	s.trigger = doc.Trigger
	s.intelligence = doc.Intelligence
	s.selected = cloneSelection(doc.Attack)
	s.recomputeTechniquePool()

	switch doc.Kind {
	case core.RuleKindThreshold:
		s.groupBy = append([]string(nil), doc.GroupBy...)
		s.filters = append([]core.FilterClause(nil), doc.Filters...)
		if doc.Conditions != nil {
			s.conditions = core.Conditions{
				Alert: append([]core.ThresholdCondition(nil), doc.Conditions.Alert...),
				Alarm: append([]core.ThresholdCondition(nil), doc.Conditions.Alarm...),
			}
		} else {
			s.conditions = core.Conditions{}
		}
		s.query = ""
		s.alertType = core.SeverityAlert

	case core.RuleKindEQL:
		s.query = doc.Query
		s.alertType = doc.AlertType
		s.queryMode = QueryModeRaw
		s.groupBy = nil
		s.filters = nil
		s.conditions = core.Conditions{}
	}

	s.datasources = append([]string(nil), doc.Datasources...)
	s.RebuildCatalog(ctx)
	s.RefreshHistory(ctx, 1)
	return nil
}

// ValidateResult reports client-side pre-validation findings. Errors mark
// documents that cannot be well-formed; warnings flag likely backend
// rejections without blocking submission.
type ValidateResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate assembles the current state and pre-validates it. The backend
// remains the final arbiter; a condition field made stale by a later
// function change is reported as a warning and never auto-corrected.
func (s *Session) Validate() ValidateResult {
	res := ValidateResult{Valid: true}

	doc, err := s.Assemble()
	if err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	if err := doc.Validate(); err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, err.Error())
	}

	if err := s.validate.Struct(doc); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				res.Warnings = append(res.Warnings, fmt.Sprintf("field %s fails %q constraint", ve.Field(), ve.Tag()))
			}
		} else {
			res.Warnings = append(res.Warnings, err.Error())
		}
	}

	if !s.trigger.Type.IsValid() {
		res.Warnings = append(res.Warnings, "no trigger policy configured")
	}

	res.Warnings = append(res.Warnings, s.staleConditionFields()...)
	return res
}

// staleConditionFields flags conditions whose field no longer fits the
// numeric narrowing of their function, which happens when the function is
// changed after a field was already selected.
func (s *Session) staleConditionFields() []string {
	var warnings []string
	for _, sev := range core.Severities() {
		chain := s.conditions.Chain(sev)
		for i, cond := range *chain {
			if !cond.Function.RequiresNumericField() || cond.Field == "" {
				continue
			}
			for _, entry := range s.catalog {
				if entry.Field == cond.Field && !entry.IsNumeric() {
					warnings = append(warnings, fmt.Sprintf(
						"%s condition %d: field %q is not numeric but function %q requires it",
						sev, i, cond.Field, cond.Function))
				}
			}
		}
	}
	return warnings
}

func cloneSelection(sel core.AttackSelection) core.AttackSelection {
	return core.AttackSelection{
		Tactics:    append([]core.AttackTag(nil), sel.Tactics...),
		Techniques: append([]core.AttackTag(nil), sel.Techniques...),
	}
}
