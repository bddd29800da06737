package editor

import (
	"fmt"

	"argus/core"
)

// ConditionPatch updates individual attributes of a threshold condition;
// nil fields are left untouched.
type ConditionPatch struct {
	Function *core.AggregateFunction
	Field    *string
	Operator *core.ConditionOperator
	Limit    *float64
	Logic    *core.LogicConnector
}

// appendCondition returns the chain with a new default condition appended.
func appendCondition(chain []core.ThresholdCondition) []core.ThresholdCondition {
	out := make([]core.ThresholdCondition, len(chain)+1)
	copy(out, chain)
	out[len(chain)] = core.NewThresholdCondition()
	return out
}

// patchCondition returns the chain with the condition at index updated.
func patchCondition(chain []core.ThresholdCondition, index int, patch ConditionPatch) ([]core.ThresholdCondition, error) {
	if index < 0 || index >= len(chain) {
		return nil, fmt.Errorf("condition index %d out of range (chain length %d)", index, len(chain))
	}

	out := make([]core.ThresholdCondition, len(chain))
	copy(out, chain)

	cond := &out[index]
	if patch.Function != nil {
		if !patch.Function.IsValid() {
			return nil, fmt.Errorf("unknown aggregation function: %s", *patch.Function)
		}
		cond.Function = *patch.Function
	}
	if patch.Field != nil {
		cond.Field = *patch.Field
	}
	if patch.Operator != nil {
		if !patch.Operator.IsValid() {
			return nil, fmt.Errorf("unknown condition operator: %s", *patch.Operator)
		}
		cond.Operator = *patch.Operator
	}
	if patch.Limit != nil {
		cond.Limit = *patch.Limit
	}
	if patch.Logic != nil {
		if !patch.Logic.IsValid() {
			return nil, fmt.Errorf("unknown logic connector: %s", *patch.Logic)
		}
		cond.Logic = *patch.Logic
	}
	return out, nil
}

// removeCondition returns the chain with the condition at index removed.
// Identity is positional; subsequent indices shift down.
func removeCondition(chain []core.ThresholdCondition, index int) ([]core.ThresholdCondition, error) {
	if index < 0 || index >= len(chain) {
		return nil, fmt.Errorf("condition index %d out of range (chain length %d)", index, len(chain))
	}
	out := make([]core.ThresholdCondition, 0, len(chain)-1)
	out = append(out, chain[:index]...)
	out = append(out, chain[index+1:]...)
	return out, nil
}

func (s *Session) chain(sev core.Severity) (*[]core.ThresholdCondition, error) {
	chain := s.conditions.Chain(sev)
	if chain == nil {
		return nil, fmt.Errorf("unknown severity class: %s", sev)
	}
	return chain, nil
}

// AddCondition appends a default condition to the severity's chain.
func (s *Session) AddCondition(sev core.Severity) error {
	chain, err := s.chain(sev)
	if err != nil {
		return err
	}
	*chain = appendCondition(*chain)
	return nil
}

// UpdateCondition patches the condition at index in the severity's chain.
func (s *Session) UpdateCondition(sev core.Severity, index int, patch ConditionPatch) error {
	chain, err := s.chain(sev)
	if err != nil {
		return err
	}
	updated, err := patchCondition(*chain, index, patch)
	if err != nil {
		return err
	}
	*chain = updated
	return nil
}

// RemoveCondition removes the condition at index from the severity's chain.
// The other severity's chain is untouched.
func (s *Session) RemoveCondition(sev core.Severity, index int) error {
	chain, err := s.chain(sev)
	if err != nil {
		return err
	}
	updated, err := removeCondition(*chain, index)
	if err != nil {
		return err
	}
	*chain = updated
	return nil
}

// Conditions returns a copy of both severity chains.
func (s *Session) Conditions() core.Conditions {
	return core.Conditions{
		Alert: append([]core.ThresholdCondition(nil), s.conditions.Alert...),
		Alarm: append([]core.ThresholdCondition(nil), s.conditions.Alarm...),
	}
}
