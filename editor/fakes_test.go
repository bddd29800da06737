package editor

import (
	"context"
	"fmt"
	"sync"

	"argus/core"
)

// fakeBackend implements every collaborator interface with canned data and
// per-call counters, standing in for the HTTP client.
type fakeBackend struct {
	mu sync.Mutex

	fields      map[string][]core.FieldCatalogEntry
	fieldErrs   map[string]error
	suggestions map[string][]string
	rules       []core.RuleSummary
	tactics     []core.Tactic
	alerts      core.AlertPage

	listFieldsCalls  int
	suggestCalls     int
	listRulesCalls   int
	listTacticsCalls int
	listAlertsCalls  int

	rulesErr   error
	tacticsErr error
	alertsErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		fields:      make(map[string][]core.FieldCatalogEntry),
		fieldErrs:   make(map[string]error),
		suggestions: make(map[string][]string),
	}
}

func (f *fakeBackend) ListFields(ctx context.Context, datasource string) ([]core.FieldCatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFieldsCalls++
	if err, ok := f.fieldErrs[datasource]; ok {
		return nil, err
	}
	entries, ok := f.fields[datasource]
	if !ok {
		return nil, fmt.Errorf("unknown datasource %q", datasource)
	}
	return entries, nil
}

func (f *fakeBackend) SuggestFieldValues(ctx context.Context, field string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestCalls++
	return f.suggestions[field], nil
}

func (f *fakeBackend) ListRules(ctx context.Context) ([]core.RuleSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listRulesCalls++
	if f.rulesErr != nil {
		return nil, f.rulesErr
	}
	return f.rules, nil
}

func (f *fakeBackend) ListAttackTactics(ctx context.Context, matrix string, includeTechniques bool) ([]core.Tactic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listTacticsCalls++
	if f.tacticsErr != nil {
		return nil, f.tacticsErr
	}
	return f.tactics, nil
}

func (f *fakeBackend) ListAlertsForRule(ctx context.Context, id string, page int) (core.AlertPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAlertsCalls++
	if f.alertsErr != nil {
		return core.AlertPage{}, f.alertsErr
	}
	return f.alerts, nil
}

// newTestSession builds a session wired to the fake backend.
func newTestSession(backend *fakeBackend) *Session {
	return NewSession(Dependencies{
		Fields:       backend,
		Suggestions:  backend,
		Rules:        backend,
		Tactics:      backend,
		History:      backend,
		AttackMatrix: "ics",
	})
}
