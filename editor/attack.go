package editor

import (
	"context"
	"fmt"

	"argus/core"
)

// AttackDimension selects which side of the selection a membership check
// addresses.
type AttackDimension string

const (
	AttackTactics    AttackDimension = "tactics"
	AttackTechniques AttackDimension = "techniques"
)

// LoadAttackTactics fetches the knowledge base snapshot for the configured
// matrix and recomputes the technique availability pool, so tags hydrated
// before the snapshot arrived regain their pool entries.
func (s *Session) LoadAttackTactics(ctx context.Context) error {
	if s.deps.Tactics == nil {
		return nil
	}
	tactics, err := s.deps.Tactics.ListAttackTactics(ctx, s.deps.AttackMatrix, true)
	if err != nil {
		s.deps.Logger.Warnw("failed to fetch attack tactics", "matrix", s.deps.AttackMatrix, "error", err)
		s.deps.Notifier.Error("Couldn't retrieve ATT&CK tactics")
		return fmt.Errorf("failed to fetch attack tactics: %w", err)
	}
	s.tactics = tactics
	s.recomputeTechniquePool()
	return nil
}

// Tactics returns the loaded knowledge base snapshot.
func (s *Session) Tactics() []core.Tactic {
	out := make([]core.Tactic, len(s.tactics))
	copy(out, s.tactics)
	return out
}

// ToggleTactic selects or deselects a tactic. The technique availability
// pool is recomputed from the still-selected tactics, so a technique
// reachable via another selected tactic survives a deselection, and
// toggling the same tactic twice restores the pre-call state.
func (s *Session) ToggleTactic(t core.Tactic) {
	if s.selected.ContainsTactic(t.ID) {
		kept := make([]core.AttackTag, 0, len(s.selected.Tactics)-1)
		for _, tag := range s.selected.Tactics {
			if tag.ID != t.ID {
				kept = append(kept, tag)
			}
		}
		s.selected.Tactics = kept
	} else {
		s.selected.Tactics = append(s.selected.Tactics, core.AttackTag{ID: t.ID, Name: t.Name})
		s.rememberTactic(t)
	}
	s.recomputeTechniquePool()
}

// ToggleTechnique selects or deselects a technique tag, independent of
// pool membership: tags are a flat accumulator, not a tree derived from
// tactic selection.
func (s *Session) ToggleTechnique(t core.Technique) {
	if s.selected.ContainsTechnique(t.ID) {
		kept := make([]core.AttackTag, 0, len(s.selected.Techniques)-1)
		for _, tag := range s.selected.Techniques {
			if tag.ID != t.ID {
				kept = append(kept, tag)
			}
		}
		s.selected.Techniques = kept
		return
	}
	s.selected.Techniques = append(s.selected.Techniques, core.AttackTag{ID: t.ID, Name: t.Name})
}

// IsSelected reports membership of an id in the tactic or technique
// selection, used for highlighting picker rows.
func (s *Session) IsSelected(dim AttackDimension, id string) bool {
	switch dim {
	case AttackTactics:
		return s.selected.ContainsTactic(id)
	case AttackTechniques:
		return s.selected.ContainsTechnique(id)
	default:
		return false
	}
}

// TechniquePool returns the techniques currently offered by the picker:
// the union of the selected tactics' technique sets.
func (s *Session) TechniquePool() []core.Technique {
	out := make([]core.Technique, len(s.techniquePool))
	copy(out, s.techniquePool)
	return out
}

// Selection returns a copy of the current tactic/technique tags.
func (s *Session) Selection() core.AttackSelection {
	return cloneSelection(s.selected)
}

// rememberTactic keeps a toggled tactic in the local snapshot when the
// knowledge base has not been loaded yet, so the pool can still be derived.
func (s *Session) rememberTactic(t core.Tactic) {
	for _, known := range s.tactics {
		if known.ID == t.ID {
			return
		}
	}
	s.tactics = append(s.tactics, t)
}

// recomputeTechniquePool rederives the availability pool as the union of
// the selected tactics' techniques, in selection order, deduplicated by id.
func (s *Session) recomputeTechniquePool() {
	pool := make([]core.Technique, 0)
	seen := make(map[string]bool)
	for _, tag := range s.selected.Tactics {
		for _, tactic := range s.tactics {
			if tactic.ID != tag.ID {
				continue
			}
			for _, tech := range tactic.Techniques {
				if seen[tech.ID] {
					continue
				}
				seen[tech.ID] = true
				pool = append(pool, tech)
			}
		}
	}
	s.techniquePool = pool
}
