package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/core"
	"argus/session"
)

func TestAssemble_ThresholdScenario(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["winlog"] = []core.FieldCatalogEntry{
		{Field: "process.name", Type: core.FieldTypeKeyword},
	}

	sess := newTestSession(backend)
	ctx := context.Background()

	require.NoError(t, sess.SetKind(core.RuleKindThreshold))
	sess.SetName("suspicious process burst")
	sess.SetDatasources(ctx, []string{"winlog"})
	require.NoError(t, sess.SetTimeframe(core.Timeframe1h))
	sess.SetRisk("7")
	sess.SetGroupBy([]string{"host.name"})

	require.NoError(t, sess.AddCondition(core.SeverityAlert))
	fn := core.FunctionCount
	field := "process.name"
	limit := 5.0
	require.NoError(t, sess.UpdateCondition(core.SeverityAlert, 0, ConditionPatch{
		Function: &fn, Field: &field, Limit: &limit,
	}))

	doc, err := sess.Assemble()
	require.NoError(t, err)

	assert.Equal(t, core.RuleKindThreshold, doc.Kind)
	assert.Equal(t, 7, doc.Risk)
	assert.Equal(t, []string{"host.name"}, doc.GroupBy)
	require.NotNil(t, doc.Conditions)
	require.Len(t, doc.Conditions.Alert, 1)
	assert.Equal(t, core.FunctionCount, doc.Conditions.Alert[0].Function)
	assert.Equal(t, 5.0, doc.Conditions.Alert[0].Limit)
	assert.Empty(t, doc.Query)
	assert.Empty(t, doc.AlertType)
	assert.NoError(t, doc.Validate())
}

func TestAssemble_EQLOmitsThresholdShape(t *testing.T) {
	sess := newTestSession(newFakeBackend())

	require.NoError(t, sess.SetKind(core.RuleKindEQL))
	sess.SetName("lsass access")
	sess.SetQuery("process where true")
	require.NoError(t, sess.SetAlertType(core.SeverityAlarm))

	// Threshold edits made before the kind switch stay out of the document.
	require.NoError(t, sess.AddCondition(core.SeverityAlert))

	doc, err := sess.Assemble()
	require.NoError(t, err)

	assert.Equal(t, "process where true", doc.Query)
	assert.Equal(t, core.SeverityAlarm, doc.AlertType)
	assert.Nil(t, doc.Conditions)
	assert.Empty(t, doc.GroupBy)
	assert.Empty(t, doc.Filters)
}

func TestAssemble_UnknownKind(t *testing.T) {
	sess := newTestSession(newFakeBackend())
	_, err := sess.Assemble()
	assert.Error(t, err)
}

func TestAssemble_RiskCoercion(t *testing.T) {
	sess := newTestSession(newFakeBackend())
	require.NoError(t, sess.SetKind(core.RuleKindThreshold))

	sess.SetRisk(" 9 ")
	doc, err := sess.Assemble()
	require.NoError(t, err)
	assert.Equal(t, 9, doc.Risk)

	sess.SetRisk("high")
	doc, err = sess.Assemble()
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Risk)
}

func TestAssemble_DetachedFromSession(t *testing.T) {
	sess := newTestSession(newFakeBackend())
	require.NoError(t, sess.SetKind(core.RuleKindThreshold))
	sess.SetGroupBy([]string{"host.name"})

	doc, err := sess.Assemble()
	require.NoError(t, err)

	sess.SetGroupBy([]string{"user.name"})
	assert.Equal(t, []string{"host.name"}, doc.GroupBy)
}

func TestHydrate_ThresholdRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["winlog"] = []core.FieldCatalogEntry{
		{Field: "event.code", Type: core.FieldTypeKeyword},
	}

	original := core.RuleDocument{
		ID:          "rule-1",
		Name:        "failed logins",
		Description: "too many 4625s",
		Kind:        core.RuleKindThreshold,
		Datasources: []string{"winlog"},
		Timeframe:   core.Timeframe1h,
		Risk:        6,
		Trigger:     core.TriggerPolicy{Type: core.TriggerPeriodic, Value: "30m"},
		Attack: core.AttackSelection{
			Tactics: []core.AttackTag{{ID: "TA0006", Name: "Credential Access"}},
		},
		GroupBy: []string{"user.name"},
		Filters: []core.FilterClause{{Type: core.FilterSimple, Field: "event.code", Operator: core.FilterOperatorEQ, Value: "4625"}},
		Conditions: &core.Conditions{
			Alert: []core.ThresholdCondition{{Function: core.FunctionCount, Operator: core.OperatorGT, Limit: 10, Logic: core.LogicAnd}},
		},
	}

	sess := newTestSession(backend)
	require.NoError(t, sess.Hydrate(context.Background(), original))

	assembled, err := sess.Assemble()
	require.NoError(t, err)
	assert.Equal(t, original, assembled)
}

func TestHydrate_EQLForcesRawMode(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["sysmon"] = []core.FieldCatalogEntry{}

	store := session.NewMemoryStore()
	require.NoError(t, store.Set("eql_query_mode", string(QueryModeBuilder)))

	sess := NewSession(Dependencies{Fields: backend, Store: store})
	require.Equal(t, QueryModeBuilder, sess.QueryMode())

	doc := core.RuleDocument{
		ID:          "rule-2",
		Name:        "raw query rule",
		Kind:        core.RuleKindEQL,
		Datasources: []string{"sysmon"},
		Query:       "process where true",
		AlertType:   core.SeverityAlert,
	}
	require.NoError(t, sess.Hydrate(context.Background(), doc))

	assert.Equal(t, QueryModeRaw, sess.QueryMode())

	assembled, err := sess.Assemble()
	require.NoError(t, err)
	assert.Equal(t, "process where true", assembled.Query)
}

func TestHydrate_UnknownKind(t *testing.T) {
	sess := newTestSession(newFakeBackend())
	err := sess.Hydrate(context.Background(), core.RuleDocument{Kind: "correlation"})
	assert.Error(t, err)
}

func TestHydrate_FetchesHistory(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["winlog"] = []core.FieldCatalogEntry{}
	backend.alerts = core.AlertPage{
		Alerts: []core.Alert{{UUID: "a1", Rule: "rule-1"}},
		Pages:  3,
	}

	sess := newTestSession(backend)
	doc := core.RuleDocument{
		ID:          "rule-1",
		Name:        "with history",
		Kind:        core.RuleKindThreshold,
		Datasources: []string{"winlog"},
	}
	require.NoError(t, sess.Hydrate(context.Background(), doc))

	history := sess.History()
	require.Len(t, history.Alerts, 1)
	assert.Equal(t, "a1", history.Alerts[0].UUID)
	assert.Equal(t, 3, history.Pages)
}

func TestRefreshHistory_SkippedForUnsavedRule(t *testing.T) {
	backend := newFakeBackend()
	sess := newTestSession(backend)

	sess.RefreshHistory(context.Background(), 1)
	assert.Equal(t, 0, backend.listAlertsCalls)
}

func TestSetQueryMode_Persists(t *testing.T) {
	store := session.NewMemoryStore()
	sess := NewSession(Dependencies{Store: store})

	sess.SetQueryMode(QueryModeBuilder)

	mode, ok := store.Get("eql_query_mode")
	require.True(t, ok)
	assert.Equal(t, string(QueryModeBuilder), mode)

	// A new session picks the preference up.
	next := NewSession(Dependencies{Store: store})
	assert.Equal(t, QueryModeBuilder, next.QueryMode())
}

func TestApplySigmaImport(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["linux-audit"] = []core.FieldCatalogEntry{
		{Field: "process.title", Type: core.FieldTypeKeyword},
	}

	sess := newTestSession(backend)
	sess.ApplySigmaImport(context.Background(), SigmaImport{
		Query:       `process where process.name == "nc"`,
		Datasources: []string{"linux-audit"},
	})

	assert.Equal(t, core.RuleKindEQL, sess.Kind())
	assert.Equal(t, QueryModeRaw, sess.QueryMode())
	assert.Equal(t, []string{"linux-audit"}, sess.Datasources())
	assert.Len(t, sess.Catalog(), 2)
}

func TestValidate_ValidThreshold(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["winlog"] = []core.FieldCatalogEntry{
		{Field: "event.code", Type: core.FieldTypeKeyword},
	}

	sess := newTestSession(backend)
	ctx := context.Background()
	require.NoError(t, sess.SetKind(core.RuleKindThreshold))
	sess.SetName("ok rule")
	sess.SetDatasources(ctx, []string{"winlog"})
	require.NoError(t, sess.SetTimeframe(core.Timeframe5m))
	require.NoError(t, sess.SetTriggerType(core.TriggerPeriodic))

	result := sess.Validate()
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingTriggerIsWarning(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["winlog"] = []core.FieldCatalogEntry{}

	sess := newTestSession(backend)
	require.NoError(t, sess.SetKind(core.RuleKindThreshold))
	sess.SetName("no trigger")
	sess.SetDatasources(context.Background(), []string{"winlog"})

	result := sess.Validate()
	assert.True(t, result.Valid)
	assert.Contains(t, result.Warnings, "no trigger policy configured")
}

func TestValidate_StaleConditionFieldIsWarning(t *testing.T) {
	backend := newFakeBackend()
	backend.fields["metrics"] = []core.FieldCatalogEntry{
		{Field: "host.name", Type: core.FieldTypeKeyword},
		{Field: "bytes.sent", Type: core.FieldTypeLong},
	}

	sess := newTestSession(backend)
	ctx := context.Background()
	require.NoError(t, sess.SetKind(core.RuleKindThreshold))
	sess.SetName("stale field")
	sess.SetDatasources(ctx, []string{"metrics"})
	require.NoError(t, sess.SetTriggerType(core.TriggerPeriodic))

	require.NoError(t, sess.AddCondition(core.SeverityAlert))
	fn := core.FunctionCount
	field := "host.name"
	require.NoError(t, sess.UpdateCondition(core.SeverityAlert, 0, ConditionPatch{Function: &fn, Field: &field}))

	// Switching count to avg strands the keyword field. The stale field is
	// flagged, never auto-cleared.
	avg := core.FunctionAvg
	require.NoError(t, sess.UpdateCondition(core.SeverityAlert, 0, ConditionPatch{Function: &avg}))

	result := sess.Validate()
	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], `"host.name"`)
	assert.Equal(t, "host.name", sess.Conditions().Alert[0].Field)
}

func TestValidate_EQLWithoutQueryIsError(t *testing.T) {
	sess := newTestSession(newFakeBackend())
	require.NoError(t, sess.SetKind(core.RuleKindEQL))
	sess.SetName("empty query")

	result := sess.Validate()
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}
