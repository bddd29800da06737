package core

import "fmt"

// TriggerType discriminates how a rule's evaluation is driven.
type TriggerType string

const (
	// TriggerPeriodic drives fixed-interval evaluation.
	TriggerPeriodic TriggerType = "periodic"
	// TriggerRule fires when another named rule produces a match.
	TriggerRule TriggerType = "rule"
)

// IsValid checks if the trigger type is valid
func (t TriggerType) IsValid() bool {
	return t == TriggerPeriodic || t == TriggerRule
}

// TriggerPolicy is a small tagged variant: periodic with a duration token,
// or rule-chained with another rule's identifier. Switching type always
// replaces the whole policy; a periodic duration is never reinterpreted as
// a rule id.
type TriggerPolicy struct {
	Type  TriggerType `json:"type" yaml:"type"`
	Value string      `json:"value" yaml:"value"`
}

// WithType returns a policy of the given type with an empty value,
// discarding the previous variant's payload.
func (p TriggerPolicy) WithType(t TriggerType) TriggerPolicy {
	return TriggerPolicy{Type: t, Value: ""}
}

// WithValue returns the policy with the active variant's payload replaced.
func (p TriggerPolicy) WithValue(v string) TriggerPolicy {
	return TriggerPolicy{Type: p.Type, Value: v}
}

// Period returns the duration token of a periodic policy.
func (p TriggerPolicy) Period() (string, error) {
	if p.Type != TriggerPeriodic {
		return "", fmt.Errorf("trigger is %q, not periodic", p.Type)
	}
	return p.Value, nil
}

// RuleID returns the chained rule identifier of a rule policy.
func (p TriggerPolicy) RuleID() (string, error) {
	if p.Type != TriggerRule {
		return "", fmt.Errorf("trigger is %q, not rule-chained", p.Type)
	}
	return p.Value, nil
}
