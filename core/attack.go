package core

// Technique is a MITRE ATT&CK technique as served by the knowledge base.
type Technique struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Tactic is a MITRE ATT&CK tactic with its technique set.
type Tactic struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Techniques []Technique `json:"techniques" yaml:"techniques"`
}

// AttackTag is the compact id+name tuple stored on a rule document.
type AttackTag struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AttackSelection accumulates the tactic and technique tags of one rule.
// It is a flat accumulator, not a tree derived live from tactic selection:
// a technique stays selected even if its parent tactic is deselected.
type AttackSelection struct {
	Tactics    []AttackTag `json:"tactics" yaml:"tactics"`
	Techniques []AttackTag `json:"techniques" yaml:"techniques"`
}

// ContainsTactic reports whether the tactic id is selected.
func (s AttackSelection) ContainsTactic(id string) bool {
	for _, t := range s.Tactics {
		if t.ID == id {
			return true
		}
	}
	return false
}

// ContainsTechnique reports whether the technique id is selected.
func (s AttackSelection) ContainsTechnique(id string) bool {
	for _, t := range s.Techniques {
		if t.ID == id {
			return true
		}
	}
	return false
}

// AttackIDs is the bare-identifier projection sent to the evaluator.
type AttackIDs struct {
	Tactics    []string `json:"tactics"`
	Techniques []string `json:"techniques"`
}

// IDs projects the selection down to bare identifiers. The full tuples stay
// in editor state and in the persisted document.
func (s AttackSelection) IDs() AttackIDs {
	ids := AttackIDs{
		Tactics:    make([]string, 0, len(s.Tactics)),
		Techniques: make([]string, 0, len(s.Techniques)),
	}
	for _, t := range s.Tactics {
		ids.Tactics = append(ids.Tactics, t.ID)
	}
	for _, t := range s.Techniques {
		ids.Techniques = append(ids.Techniques, t.ID)
	}
	return ids
}
