package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerPolicy_WithTypeDiscardsValue(t *testing.T) {
	p := TriggerPolicy{Type: TriggerPeriodic, Value: "1h"}
	switched := p.WithType(TriggerRule)

	assert.Equal(t, TriggerRule, switched.Type)
	assert.Empty(t, switched.Value, "a periodic duration must never survive as a rule id")
}

func TestTriggerPolicy_WithValue(t *testing.T) {
	p := TriggerPolicy{Type: TriggerPeriodic}
	p = p.WithValue("30m")
	assert.Equal(t, "30m", p.Value)
	assert.Equal(t, TriggerPeriodic, p.Type)
}

func TestTriggerPolicy_Period(t *testing.T) {
	p := TriggerPolicy{Type: TriggerPeriodic, Value: "1d"}
	period, err := p.Period()
	assert.NoError(t, err)
	assert.Equal(t, "1d", period)

	_, err = p.RuleID()
	assert.Error(t, err)
}

func TestTriggerPolicy_RuleID(t *testing.T) {
	p := TriggerPolicy{Type: TriggerRule, Value: "abc-123"}
	id, err := p.RuleID()
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = p.Period()
	assert.Error(t, err)
}

func TestTriggerType_IsValid(t *testing.T) {
	assert.True(t, TriggerPeriodic.IsValid())
	assert.True(t, TriggerRule.IsValid())
	assert.False(t, TriggerType("cron").IsValid())
	assert.False(t, TriggerType("").IsValid())
}
