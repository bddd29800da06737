package core

// Field type names as declared by the backend field listing.
const (
	FieldTypeKeyword = "keyword"
	FieldTypeLong    = "long"
	FieldTypeDouble  = "double"
)

// WildcardField is the synthetic catch-all entry prepended to every catalog.
const WildcardField = "ALL"

// FieldCatalogEntry is one selectable field of a datasource.
type FieldCatalogEntry struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

// IsNumeric reports whether the field can feed a numeric aggregation.
func (e FieldCatalogEntry) IsNumeric() bool {
	return e.Type == FieldTypeLong || e.Type == FieldTypeDouble
}

// WildcardEntry returns the sentinel entry that heads every field catalog.
func WildcardEntry() FieldCatalogEntry {
	return FieldCatalogEntry{Field: WildcardField, Type: FieldTypeKeyword}
}

// DataPoint is one bucket of a profiling series or one matched sample row
// of an EQL lookup.
type DataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
