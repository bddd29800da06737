package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThresholdCondition_Defaults(t *testing.T) {
	cond := NewThresholdCondition()
	assert.Equal(t, OperatorGT, cond.Operator)
	assert.Equal(t, float64(0), cond.Limit)
	assert.Equal(t, LogicAnd, cond.Logic)
	assert.Empty(t, cond.Function)
	assert.Empty(t, cond.Field)
}

func TestConditions_Chain(t *testing.T) {
	c := Conditions{}
	*c.Chain(SeverityAlert) = append(*c.Chain(SeverityAlert), NewThresholdCondition())
	*c.Chain(SeverityAlarm) = append(*c.Chain(SeverityAlarm), NewThresholdCondition(), NewThresholdCondition())

	assert.Len(t, c.Alert, 1)
	assert.Len(t, c.Alarm, 2)
	assert.Equal(t, 3, c.Total())
	assert.Nil(t, c.Chain("critical"))
}

func TestAggregateFunction_RequiresNumericField(t *testing.T) {
	assert.False(t, FunctionCount.RequiresNumericField())
	assert.False(t, FunctionUnique.RequiresNumericField())
	assert.False(t, AggregateFunction("").RequiresNumericField())
	assert.True(t, FunctionMin.RequiresNumericField())
	assert.True(t, FunctionMax.RequiresNumericField())
	assert.True(t, FunctionAvg.RequiresNumericField())
	assert.True(t, FunctionSum.RequiresNumericField())
}

func TestNewFilterClause(t *testing.T) {
	simple := NewFilterClause(FilterSimple)
	assert.Equal(t, FilterSimple, simple.Type)

	script := NewFilterClause(FilterScript)
	assert.Equal(t, FilterScript, script.Type)
	assert.Empty(t, script.Field)
}

func TestRuleDocument_Validate_Threshold(t *testing.T) {
	doc := RuleDocument{
		Name:        "failed logins",
		Kind:        RuleKindThreshold,
		Datasources: []string{"winlog"},
		Timeframe:   Timeframe1h,
		Conditions: &Conditions{
			Alert: []ThresholdCondition{{Function: FunctionCount, Operator: OperatorGT, Limit: 5, Logic: LogicAnd}},
		},
	}
	assert.NoError(t, doc.Validate())
}

func TestRuleDocument_Validate_ThresholdRejectsQueryFields(t *testing.T) {
	doc := RuleDocument{
		Name:        "bad",
		Kind:        RuleKindThreshold,
		Datasources: []string{"winlog"},
		Query:       "process where true",
	}
	assert.Error(t, doc.Validate())

	doc.Query = ""
	doc.AlertType = SeverityAlert
	assert.Error(t, doc.Validate())
}

func TestRuleDocument_Validate_EQL(t *testing.T) {
	doc := RuleDocument{
		Name:        "lsass access",
		Kind:        RuleKindEQL,
		Datasources: []string{"sysmon"},
		Query:       `process where process.name == "mimikatz.exe"`,
		AlertType:   SeverityAlarm,
	}
	assert.NoError(t, doc.Validate())
}

func TestRuleDocument_Validate_EQLRequiresQuery(t *testing.T) {
	doc := RuleDocument{
		Name:      "empty",
		Kind:      RuleKindEQL,
		Query:     "   ",
		AlertType: SeverityAlert,
	}
	assert.Error(t, doc.Validate())
}

func TestRuleDocument_Validate_EQLRejectsThresholdFields(t *testing.T) {
	doc := RuleDocument{
		Name:      "mixed",
		Kind:      RuleKindEQL,
		Query:     "process where true",
		AlertType: SeverityAlert,
		Conditions: &Conditions{
			Alert: []ThresholdCondition{NewThresholdCondition()},
		},
	}
	assert.Error(t, doc.Validate())

	doc.Conditions = nil
	doc.GroupBy = []string{"host.name"}
	assert.Error(t, doc.Validate())
}

func TestRuleDocument_Validate_EQLRequiresValidAlertType(t *testing.T) {
	doc := RuleDocument{
		Name:      "no severity",
		Kind:      RuleKindEQL,
		Query:     "process where true",
		AlertType: "notice",
	}
	assert.Error(t, doc.Validate())
}

func TestRuleDocument_Validate_UnknownKind(t *testing.T) {
	doc := RuleDocument{Name: "x", Kind: "correlation"}
	assert.Error(t, doc.Validate())

	empty := RuleDocument{Name: "y"}
	assert.Error(t, empty.Validate())
}

func TestRuleDocument_Validate_KindIsCaseInsensitive(t *testing.T) {
	doc := RuleDocument{
		Name:        "mixed case kind",
		Kind:        "Threshold",
		Datasources: []string{"winlog"},
	}
	assert.NoError(t, doc.Validate())
}

func TestRuleDocument_Validate_Nil(t *testing.T) {
	var doc *RuleDocument
	assert.Error(t, doc.Validate())
}
