package core

// Alert is one historical evaluation hit of a rule, as returned by the
// alert history listing. Rendered read-only in the editor; never written
// back into the editable models.
type Alert struct {
	UUID      string   `json:"uuid"`
	Rule      string   `json:"rule"`
	Status    string   `json:"status"`
	Type      Severity `json:"type"`
	GroupBy   string   `json:"groupby,omitempty"`
	Result    string   `json:"result"`
	Timestamp string   `json:"timestamp"`
}

// AlertPage is one page of a rule's alert history.
type AlertPage struct {
	Alerts []Alert `json:"alerts"`
	Pages  int     `json:"pages"`
}
