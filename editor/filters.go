package editor

import (
	"context"
	"fmt"

	"argus/core"
)

// FilterPatch updates individual attributes of a filter clause; nil fields
// are left untouched.
type FilterPatch struct {
	Field    *string
	Operator *core.FilterOperator
	Value    *string
}

// AddFilter appends an empty clause of the given kind to the filter list.
func (s *Session) AddFilter(kind core.FilterKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown filter kind: %s", kind)
	}
	filters := make([]core.FilterClause, len(s.filters)+1)
	copy(filters, s.filters)
	filters[len(s.filters)] = core.NewFilterClause(kind)
	s.filters = filters
	return nil
}

// UpdateFilter patches the clause at index. Changing a simple clause's
// field prefetches value suggestions for the new field; the suggestion
// fetch is advisory and its failure never fails the update.
func (s *Session) UpdateFilter(ctx context.Context, index int, patch FilterPatch) error {
	if index < 0 || index >= len(s.filters) {
		return fmt.Errorf("filter index %d out of range (list length %d)", index, len(s.filters))
	}

	filters := make([]core.FilterClause, len(s.filters))
	copy(filters, s.filters)
	clause := &filters[index]

	if patch.Field != nil {
		if clause.Type != core.FilterSimple {
			return fmt.Errorf("cannot set field on a %s filter", clause.Type)
		}
		clause.Field = *patch.Field
	}
	if patch.Operator != nil {
		if clause.Type != core.FilterSimple {
			return fmt.Errorf("cannot set operator on a %s filter", clause.Type)
		}
		clause.Operator = *patch.Operator
	}
	if patch.Value != nil {
		clause.Value = *patch.Value
	}
	s.filters = filters

	if patch.Field != nil && *patch.Field != "" {
		s.prefetchSuggestions(ctx, *patch.Field)
	}
	return nil
}

// RemoveFilter removes the clause at index. Identity is positional;
// subsequent indices shift down.
func (s *Session) RemoveFilter(index int) error {
	if index < 0 || index >= len(s.filters) {
		return fmt.Errorf("filter index %d out of range (list length %d)", index, len(s.filters))
	}
	filters := make([]core.FilterClause, 0, len(s.filters)-1)
	filters = append(filters, s.filters[:index]...)
	filters = append(filters, s.filters[index+1:]...)
	s.filters = filters
	return nil
}

// Filters returns a copy of the filter clause list.
func (s *Session) Filters() []core.FilterClause {
	out := make([]core.FilterClause, len(s.filters))
	copy(out, s.filters)
	return out
}

// Suggestions returns the cached value suggestions for a field. The list
// is an autocomplete source only; the value input accepts freeform text.
func (s *Session) Suggestions(field string) []string {
	if values, ok := s.suggestions.Get(field); ok {
		out := make([]string, len(values))
		copy(out, values)
		return out
	}
	return nil
}

func (s *Session) prefetchSuggestions(ctx context.Context, field string) {
	if s.deps.Suggestions == nil {
		return
	}
	if _, ok := s.suggestions.Get(field); ok {
		return
	}
	values, err := s.deps.Suggestions.SuggestFieldValues(ctx, field)
	if err != nil {
		// Advisory fetch; the user can still type any value.
		s.deps.Logger.Debugw("failed to fetch field suggestions", "field", field, "error", err)
		return
	}
	s.suggestions.Add(field, values)
}
