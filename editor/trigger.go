package editor

import (
	"context"
	"fmt"

	"argus/core"
)

// Trigger returns the current trigger policy.
func (s *Session) Trigger() core.TriggerPolicy {
	return s.trigger
}

// SetTriggerType replaces the whole policy with an empty one of the given
// type. The previous variant's value is always discarded, never coerced.
func (s *Session) SetTriggerType(t core.TriggerType) error {
	if !t.IsValid() {
		return fmt.Errorf("unknown trigger type: %s", t)
	}
	s.trigger = s.trigger.WithType(t)
	return nil
}

// SetTriggerValue updates the active variant's payload.
func (s *Session) SetTriggerValue(value string) {
	s.trigger = s.trigger.WithValue(value)
}

// CandidateRules returns the rules a rule-chained trigger can reference.
// The list is fetched only the first time it is needed while still empty,
// a cache-once policy that avoids repeated fetches across renders within
// one session.
func (s *Session) CandidateRules(ctx context.Context) []core.RuleSummary {
	if s.trigger.Type != core.TriggerRule {
		return nil
	}
	if len(s.candidateRules) == 0 && s.deps.Rules != nil {
		rules, err := s.deps.Rules.ListRules(ctx)
		if err != nil {
			s.deps.Logger.Warnw("failed to fetch candidate rules", "error", err)
			s.deps.Notifier.Error("Couldn't retrieve rules for trigger selection")
			return nil
		}
		s.candidateRules = rules
	}
	out := make([]core.RuleSummary, len(s.candidateRules))
	copy(out, s.candidateRules)
	return out
}
