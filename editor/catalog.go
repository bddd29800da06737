package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"argus/core"
	"argus/metrics"
)

// RebuildCatalog refetches the field catalog for the current datasource
// set. Fetches are dispatched concurrently with no ordering guarantee on
// completion; deduplication happens afterwards in datasource iteration
// order, so the first datasource to declare a field wins regardless of
// which fetch finished first. A failed datasource is reported and omitted
// without aborting the rest.
func (s *Session) RebuildCatalog(ctx context.Context) []core.FieldCatalogEntry {
	if s.deps.Fields == nil || len(s.datasources) == 0 {
		s.catalog = []core.FieldCatalogEntry{core.WildcardEntry()}
		return s.Catalog()
	}

	start := time.Now()

	results := make([][]core.FieldCatalogEntry, len(s.datasources))
	errs := make([]error, len(s.datasources))

	var wg sync.WaitGroup
	for i, ds := range s.datasources {
		wg.Add(1)
		go func(i int, ds string) {
			defer wg.Done()
			results[i], errs[i] = s.deps.Fields.ListFields(ctx, ds)
		}(i, ds)
	}
	wg.Wait()

	catalog := []core.FieldCatalogEntry{core.WildcardEntry()}
	seen := map[string]bool{core.WildcardField: true}
	for i, ds := range s.datasources {
		if errs[i] != nil {
			s.deps.Logger.Warnw("failed to fetch datasource fields", "datasource", ds, "error", errs[i])
			s.deps.Notifier.Error(fmt.Sprintf("Couldn't retrieve fields for datasource %q", ds))
			continue
		}
		for _, entry := range results[i] {
			if seen[entry.Field] {
				continue
			}
			seen[entry.Field] = true
			catalog = append(catalog, entry)
		}
	}

	s.catalog = catalog
	metrics.CatalogRebuildDuration.Observe(time.Since(start).Seconds())
	return s.Catalog()
}

// Catalog returns a copy of the current field catalog, headed by the
// wildcard sentinel.
func (s *Session) Catalog() []core.FieldCatalogEntry {
	out := make([]core.FieldCatalogEntry, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// FieldOptions narrows a catalog to the fields selectable under the given
// aggregation function: non-trivial aggregates only accept numeric fields.
// Evaluated fresh from the current function and catalog on every call, so
// a previously chosen field can fall outside the returned set; it is not
// retroactively cleared.
func FieldOptions(fn core.AggregateFunction, catalog []core.FieldCatalogEntry) []core.FieldCatalogEntry {
	if !fn.RequiresNumericField() {
		out := make([]core.FieldCatalogEntry, len(catalog))
		copy(out, catalog)
		return out
	}
	out := make([]core.FieldCatalogEntry, 0, len(catalog))
	for _, entry := range catalog {
		if entry.IsNumeric() {
			out = append(out, entry)
		}
	}
	return out
}

// OptionsFor narrows the session's catalog for the given function.
func (s *Session) OptionsFor(fn core.AggregateFunction) []core.FieldCatalogEntry {
	return FieldOptions(fn, s.catalog)
}
