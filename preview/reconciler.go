// Package preview reconciles asynchronous rule evaluation requests with
// the editor: it posts an assembled document (or a derived lookup or
// profiling query) to the remote evaluator and maps the heterogeneous
// response into a uniform renderable result.
package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"argus/core"
	"argus/metrics"
	"argus/notify"
)

// ErrSuperseded marks a response that arrived after a newer request was
// issued; its result has been discarded.
var ErrSuperseded = errors.New("response superseded by a newer request")

// Evaluator is the remote rule evaluator, reached only through these
// read-only calls.
type Evaluator interface {
	PreviewRule(ctx context.Context, payload core.PreviewPayload) (core.PreviewResponse, error)
	LookupRule(ctx context.Context, req core.LookupRequest) ([]core.DataPoint, error)
	ProfileField(ctx context.Context, req core.ProfileRequest) ([]core.DataPoint, error)
}

// State of the reconciler's request cycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// PreviewOutcome is a rendered preview response: the hits per severity
// class plus the evaluator's query plan for display.
type PreviewOutcome struct {
	Output string
	Alerts []core.PreviewHit
	Alarms []core.PreviewHit
}

// ThresholdLine annotates a profiling series with one condition limit so
// alert/alarm lines can be overlaid on the chart.
type ThresholdLine struct {
	Severity core.Severity
	Limit    float64
}

// SeriesOutcome is a rendered lookup or profiling result.
type SeriesOutcome struct {
	Points     []core.DataPoint
	Thresholds []ThresholdLine
}

// Reconciler runs the preview request/response cycle. Requests are tagged
// with a monotonic sequence; a response whose sequence is no longer the
// latest issued is discarded, so a superseded in-flight request can never
// overwrite a newer result.
type Reconciler struct {
	evaluator Evaluator
	notifier  notify.Notifier
	logger    *zap.SugaredLogger
	timeout   time.Duration

	mu      sync.Mutex
	seq     uint64
	state   State
	preview *PreviewOutcome
	series  *SeriesOutcome
}

// New creates a reconciler. timeout bounds every evaluator call; on expiry
// the request fails instead of loading forever.
func New(evaluator Evaluator, notifier notify.Notifier, logger *zap.SugaredLogger, timeout time.Duration) *Reconciler {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reconciler{
		evaluator: evaluator,
		notifier:  notifier,
		logger:    logger,
		timeout:   timeout,
		state:     StateIdle,
	}
}

// State returns the current request-cycle state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// PreviewResult returns the latest preview outcome, or nil.
func (r *Reconciler) PreviewResult() *PreviewOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preview
}

// Series returns the latest lookup/profiling outcome, or nil.
func (r *Reconciler) Series() *SeriesOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.series
}

// Reset returns the reconciler to idle and drops cached results.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateIdle
	r.preview = nil
	r.series = nil
}

// begin issues a new request sequence and enters loading. clearPreview
// drops the prior preview outcome first: the explicit Preview action
// treats a stale result from a previously edited document as worse than a
// brief empty state.
func (r *Reconciler) begin(clearPreview bool) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.state = StateLoading
	if clearPreview {
		r.preview = nil
	}
	return r.seq
}

// current reports whether seq is still the latest issued request.
func (r *Reconciler) current(seq uint64) bool {
	return seq == r.seq
}

// Preview evaluates the document and replaces the preview outcome. Prior
// results are cleared before the request is issued.
func (r *Reconciler) Preview(ctx context.Context, doc core.RuleDocument) (*PreviewOutcome, error) {
	payload, err := core.PreviewPayloadFrom(doc)
	if err != nil {
		return nil, err
	}

	seq := r.begin(true)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.evaluator.PreviewRule(ctx, payload)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.current(seq) {
		metrics.StalePreviewResponses.Inc()
		metrics.PreviewRequests.WithLabelValues("preview", "stale").Inc()
		return nil, ErrSuperseded
	}
	if err != nil {
		r.state = StateError
		metrics.PreviewRequests.WithLabelValues("preview", "error").Inc()
		r.logger.Warnw("preview request failed", "error", err)
		r.notifier.Error(fmt.Sprintf("Preview failed: %v", err))
		return nil, err
	}

	outcome := &PreviewOutcome{
		Output: string(resp.Output),
		Alerts: resp.Result.Alert,
		Alarms: resp.Result.Alarm,
	}
	r.preview = outcome
	r.state = StateSuccess
	metrics.PreviewRequests.WithLabelValues("preview", "success").Inc()
	return outcome, nil
}

// Lookup runs the EQL reverse lookup for the document's query and replaces
// the series outcome. On failure the prior series stays visible.
func (r *Reconciler) Lookup(ctx context.Context, doc core.RuleDocument) (*SeriesOutcome, error) {
	req := core.LookupRequest{
		Query:       doc.Query,
		Datasources: doc.Datasources,
		Timeframe:   core.TimeframeAlways,
	}

	seq := r.begin(false)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	points, err := r.evaluator.LookupRule(ctx, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.current(seq) {
		metrics.StalePreviewResponses.Inc()
		metrics.PreviewRequests.WithLabelValues("lookup", "stale").Inc()
		return nil, ErrSuperseded
	}
	if err != nil {
		r.state = StateError
		metrics.PreviewRequests.WithLabelValues("lookup", "error").Inc()
		r.logger.Warnw("eql lookup failed", "error", err)
		r.notifier.Error(fmt.Sprintf("Error on reverse lookup: %v", err))
		return nil, err
	}

	outcome := &SeriesOutcome{Points: points}
	r.series = outcome
	r.state = StateSuccess
	metrics.PreviewRequests.WithLabelValues("lookup", "success").Inc()
	return outcome, nil
}

// Profile runs field profiling and replaces the series outcome, annotated
// with the condition limits so threshold lines can be overlaid. On failure
// the prior series stays visible.
func (r *Reconciler) Profile(ctx context.Context, req core.ProfileRequest, conditions *core.Conditions) (*SeriesOutcome, error) {
	seq := r.begin(false)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	points, err := r.evaluator.ProfileField(ctx, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.current(seq) {
		metrics.StalePreviewResponses.Inc()
		metrics.PreviewRequests.WithLabelValues("profile", "stale").Inc()
		return nil, ErrSuperseded
	}
	if err != nil {
		r.state = StateError
		metrics.PreviewRequests.WithLabelValues("profile", "error").Inc()
		r.logger.Warnw("field profiling failed", "field", req.Field, "error", err)
		r.notifier.Error(fmt.Sprintf("Error on profiling: %v", err))
		return nil, err
	}

	outcome := &SeriesOutcome{
		Points:     points,
		Thresholds: thresholdLines(conditions),
	}
	r.series = outcome
	r.state = StateSuccess
	metrics.PreviewRequests.WithLabelValues("profile", "success").Inc()
	return outcome, nil
}

// EnsureProfile returns the cached series if one exists, fetching only on
// a cache miss. This is the tab-switch entry path into the profiler view.
func (r *Reconciler) EnsureProfile(ctx context.Context, req core.ProfileRequest, conditions *core.Conditions) (*SeriesOutcome, error) {
	if cached := r.Series(); cached != nil {
		return cached, nil
	}
	return r.Profile(ctx, req, conditions)
}

// EnsureLookup returns the cached series if one exists, fetching only on
// a cache miss. This is the tab-switch entry path into the lookup view.
func (r *Reconciler) EnsureLookup(ctx context.Context, doc core.RuleDocument) (*SeriesOutcome, error) {
	if cached := r.Series(); cached != nil {
		return cached, nil
	}
	return r.Lookup(ctx, doc)
}

// thresholdLines flattens both severity chains into overlay annotations.
func thresholdLines(conditions *core.Conditions) []ThresholdLine {
	if conditions == nil {
		return nil
	}
	lines := make([]ThresholdLine, 0, conditions.Total())
	for _, cond := range conditions.Alert {
		lines = append(lines, ThresholdLine{Severity: core.SeverityAlert, Limit: cond.Limit})
	}
	for _, cond := range conditions.Alarm {
		lines = append(lines, ThresholdLine{Severity: core.SeverityAlarm, Limit: cond.Limit})
	}
	return lines
}
