// Package core defines the detection rule document model shared by the
// editor, the preview reconciler, and the backend client.
package core

import (
	"fmt"
	"strings"
)

// RuleKind discriminates the two shapes a rule document can take.
type RuleKind string

const (
	// RuleKindThreshold expresses a rule as aggregation conditions over grouped data.
	RuleKindThreshold RuleKind = "threshold"
	// RuleKindEQL expresses a rule as a free-text query in the evaluator's language.
	RuleKindEQL RuleKind = "eql"
)

// String returns the string representation
func (k RuleKind) String() string {
	return string(k)
}

// IsValid checks if the rule kind is valid
func (k RuleKind) IsValid() bool {
	switch k {
	case RuleKindThreshold, RuleKindEQL:
		return true
	default:
		return false
	}
}

// Severity is the outcome class a condition chain or EQL match produces.
type Severity string

const (
	SeverityAlert Severity = "alert"
	SeverityAlarm Severity = "alarm"
)

// String returns the string representation
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityAlert, SeverityAlarm:
		return true
	default:
		return false
	}
}

// Severities returns the severity classes in evaluation order.
func Severities() []Severity {
	return []Severity{SeverityAlert, SeverityAlarm}
}

// AggregateFunction is the aggregation applied by a threshold condition.
type AggregateFunction string

const (
	FunctionCount  AggregateFunction = "count"
	FunctionUnique AggregateFunction = "unique"
	FunctionMin    AggregateFunction = "min"
	FunctionMax    AggregateFunction = "max"
	FunctionAvg    AggregateFunction = "avg"
	FunctionSum    AggregateFunction = "sum"
)

// AggregateFunctions returns all supported aggregation functions.
func AggregateFunctions() []AggregateFunction {
	return []AggregateFunction{FunctionCount, FunctionUnique, FunctionMin, FunctionMax, FunctionAvg, FunctionSum}
}

// IsValid checks if the function is valid
func (f AggregateFunction) IsValid() bool {
	switch f {
	case FunctionCount, FunctionUnique, FunctionMin, FunctionMax, FunctionAvg, FunctionSum:
		return true
	default:
		return false
	}
}

// RequiresNumericField reports whether the function only makes sense over
// numeric-typed fields. count and unique operate on any field.
func (f AggregateFunction) RequiresNumericField() bool {
	switch f {
	case FunctionCount, FunctionUnique, "":
		return false
	default:
		return true
	}
}

// ConditionOperator compares an aggregate against its limit.
type ConditionOperator string

const (
	OperatorGT ConditionOperator = ">"
	OperatorGE ConditionOperator = ">="
	OperatorEQ ConditionOperator = "=="
	OperatorLT ConditionOperator = "<"
	OperatorLE ConditionOperator = "<="
)

// ConditionOperators returns all supported comparison operators.
func ConditionOperators() []ConditionOperator {
	return []ConditionOperator{OperatorGT, OperatorGE, OperatorEQ, OperatorLT, OperatorLE}
}

// IsValid checks if the operator is valid
func (o ConditionOperator) IsValid() bool {
	switch o {
	case OperatorGT, OperatorGE, OperatorEQ, OperatorLT, OperatorLE:
		return true
	default:
		return false
	}
}

// LogicConnector joins a threshold condition to its predecessor in the chain.
type LogicConnector string

const (
	LogicAnd LogicConnector = "AND"
	LogicOr  LogicConnector = "OR"
)

// IsValid checks if the connector is valid
func (l LogicConnector) IsValid() bool {
	return l == LogicAnd || l == LogicOr
}

// ThresholdCondition is a single aggregation condition in a severity chain.
// Logic describes the connector glued between this condition and its
// immediate predecessor; the first element's connector is serialized but
// ignored by the evaluator.
type ThresholdCondition struct {
	Function AggregateFunction `json:"function" yaml:"function"`
	Field    string            `json:"field" yaml:"field"`
	Operator ConditionOperator `json:"operator" yaml:"operator"`
	Limit    float64           `json:"limit" yaml:"limit"`
	Logic    LogicConnector    `json:"logic" yaml:"logic"`
}

// NewThresholdCondition returns a condition with the editor defaults.
func NewThresholdCondition() ThresholdCondition {
	return ThresholdCondition{
		Operator: OperatorGT,
		Limit:    0,
		Logic:    LogicAnd,
	}
}

// Conditions holds the two independent severity chains of a threshold rule.
// Alert and alarm conditions are mutually exclusive outcomes evaluated
// against the same aggregation window, so they are kept as separate lists
// rather than one tagged list.
type Conditions struct {
	Alert []ThresholdCondition `json:"alert" yaml:"alert"`
	Alarm []ThresholdCondition `json:"alarm" yaml:"alarm"`
}

// Chain returns a pointer to the chain for the given severity, or nil for an
// unknown severity.
func (c *Conditions) Chain(sev Severity) *[]ThresholdCondition {
	switch sev {
	case SeverityAlert:
		return &c.Alert
	case SeverityAlarm:
		return &c.Alarm
	default:
		return nil
	}
}

// Total returns the number of conditions across both chains.
func (c *Conditions) Total() int {
	return len(c.Alert) + len(c.Alarm)
}

// FilterKind discriminates filter clause shapes.
type FilterKind string

const (
	// FilterSimple is a field/operator/value triple.
	FilterSimple FilterKind = "simple"
	// FilterScript is a raw predicate expression in the evaluator's scripting dialect.
	FilterScript FilterKind = "script"
)

// IsValid checks if the filter kind is valid
func (k FilterKind) IsValid() bool {
	return k == FilterSimple || k == FilterScript
}

// FilterOperator compares a field against a literal value in a simple filter.
type FilterOperator string

const (
	FilterOperatorEQ FilterOperator = "=="
	FilterOperatorNE FilterOperator = "!="
)

// FilterOperators returns the supported filter operators.
func FilterOperators() []FilterOperator {
	return []FilterOperator{FilterOperatorEQ, FilterOperatorNE}
}

// FilterClause is one clause of a threshold rule's filter list. Clauses are
// implicitly AND-ed by the evaluator; identity is positional within the
// owning list. Value may be empty while the user is still typing; the
// backend is the final validator.
type FilterClause struct {
	Type     FilterKind     `json:"type" yaml:"type"`
	Field    string         `json:"field,omitempty" yaml:"field,omitempty"`
	Operator FilterOperator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    string         `json:"value" yaml:"value"`
}

// NewFilterClause returns an empty clause of the given kind.
func NewFilterClause(kind FilterKind) FilterClause {
	if kind == FilterScript {
		return FilterClause{Type: FilterScript}
	}
	return FilterClause{Type: FilterSimple}
}

// Intelligence carries free-text analyst annotations on a rule.
type Intelligence struct {
	Note   string `json:"note" yaml:"note"`
	Action string `json:"action" yaml:"action"`
}

// RuleSummary is the compact listing shape returned by the rules index,
// used by the rule-chained trigger picker.
type RuleSummary struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// RuleDocument is the unit persisted and evaluated. Exactly one of
// (Conditions+Filters+GroupBy) or (Query+AlertType) is populated, matching
// Kind; Validate enforces the mutual exclusion.
type RuleDocument struct {
	ID          string   `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Kind        RuleKind `json:"type" yaml:"type" validate:"required,oneof=threshold eql"`
	Datasources []string `json:"datasources" yaml:"datasources" validate:"min=1"`
	Timeframe   Timeframe `json:"timeframe" yaml:"timeframe"`
	Risk        int       `json:"risk" yaml:"risk" validate:"gte=0,lte=10"`

	Trigger      TriggerPolicy `json:"trigger" yaml:"trigger"`
	Intelligence Intelligence  `json:"intelligence" yaml:"intelligence"`

	// Attack is a denormalized snapshot taken at tagging time; edits to the
	// knowledge base afterwards do not retroactively change a saved rule.
	Attack AttackSelection `json:"attack" yaml:"attack"`

	// Threshold shape.
	GroupBy    []string       `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Filters    []FilterClause `json:"filters,omitempty" yaml:"filters,omitempty"`
	Conditions *Conditions    `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// EQL shape.
	Query     string   `json:"query,omitempty" yaml:"query,omitempty"`
	AlertType Severity `json:"alert_type,omitempty" yaml:"alert_type,omitempty"`
}

// Validate validates the document based on its kind and ensures mutual
// exclusion between the threshold and EQL shapes. The backend remains the
// final arbiter; this catches documents that cannot be well-formed.
func (r *RuleDocument) Validate() error {
	if r == nil {
		return fmt.Errorf("cannot validate nil rule document")
	}

	kind := RuleKind(strings.ToLower(strings.TrimSpace(r.Kind.String())))

	switch kind {
	case RuleKindThreshold:
		if strings.TrimSpace(r.Query) != "" || r.AlertType != "" {
			return fmt.Errorf("threshold rules cannot carry query or alert_type fields")
		}
		return nil

	case RuleKindEQL:
		if strings.TrimSpace(r.Query) == "" {
			return fmt.Errorf("eql rules must have a query field")
		}
		if r.Conditions != nil && r.Conditions.Total() > 0 {
			return fmt.Errorf("eql rules cannot carry threshold conditions")
		}
		if len(r.Filters) > 0 || len(r.GroupBy) > 0 {
			return fmt.Errorf("eql rules cannot carry filters or groupings")
		}
		if !r.AlertType.IsValid() {
			return fmt.Errorf("eql rules must name the severity a match produces")
		}
		return nil

	default:
		if kind == "" {
			return fmt.Errorf("rule kind cannot be empty")
		}
		return fmt.Errorf("unknown rule kind: %s (must be threshold or eql)", kind)
	}
}
