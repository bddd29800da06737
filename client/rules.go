package client

import (
	"context"
	"fmt"
	"net/http"

	"argus/core"
	"argus/metrics"
)

// ListRules returns the rule summaries, used by the rule-chained trigger
// picker.
func (c *Client) ListRules(ctx context.Context) ([]core.RuleSummary, error) {
	var rules []core.RuleSummary
	if err := c.get(ctx, "/rules", nil, &rules); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("listRules").Inc()
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// GetRule fetches one persisted rule document.
func (c *Client) GetRule(ctx context.Context, id string) (core.RuleDocument, error) {
	var doc core.RuleDocument
	if err := c.get(ctx, "/rules/"+id, nil, &doc); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("getRule").Inc()
		return core.RuleDocument{}, fmt.Errorf("failed to fetch rule %s: %w", id, err)
	}
	return doc, nil
}

// CreateRule persists a new rule document. The backend is the authority on
// rejecting invalid documents.
func (c *Client) CreateRule(ctx context.Context, doc core.RuleDocument) error {
	if err := c.send(ctx, http.MethodPost, "/rules", doc, nil); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("createRule").Inc()
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

// UpdateRule replaces an existing rule document.
func (c *Client) UpdateRule(ctx context.Context, id string, doc core.RuleDocument) error {
	if err := c.send(ctx, http.MethodPut, "/rules/"+id, doc, nil); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("updateRule").Inc()
		return fmt.Errorf("failed to update rule %s: %w", id, err)
	}
	return nil
}

// DeleteRule removes a persisted rule.
func (c *Client) DeleteRule(ctx context.Context, id string) error {
	if err := c.send(ctx, http.MethodDelete, "/rules/"+id, nil, nil); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("deleteRule").Inc()
		return fmt.Errorf("failed to delete rule %s: %w", id, err)
	}
	return nil
}

// PreviewRule evaluates a candidate document against historical data
// without persisting it.
func (c *Client) PreviewRule(ctx context.Context, payload core.PreviewPayload) (core.PreviewResponse, error) {
	var resp core.PreviewResponse
	if err := c.send(ctx, http.MethodPost, "/rules/preview", payload, &resp); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("previewRule").Inc()
		return core.PreviewResponse{}, fmt.Errorf("failed to preview rule: %w", err)
	}
	return resp, nil
}

// LookupRule returns sample rows matched by an EQL query.
func (c *Client) LookupRule(ctx context.Context, req core.LookupRequest) ([]core.DataPoint, error) {
	var points []core.DataPoint
	if err := c.send(ctx, http.MethodPost, "/rules/eql-lookup", req, &points); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("lookupRule").Inc()
		return nil, fmt.Errorf("failed to run eql lookup: %w", err)
	}
	return points, nil
}

// SigmaConversion is the result of converting an uploaded sigma rule.
type SigmaConversion struct {
	Query       string   `json:"query"`
	Datasources []string `json:"datasources"`
}

// ImportSigmaRule converts a sigma rule file into an EQL query and the
// datasources it applies to.
func (c *Client) ImportSigmaRule(ctx context.Context, filename string, content []byte) (SigmaConversion, error) {
	var conv SigmaConversion
	if err := c.postFile(ctx, "/rules/to-sigma", "rule", filename, content, &conv); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("importSigmaRule").Inc()
		return SigmaConversion{}, fmt.Errorf("failed to convert sigma rule: %w", err)
	}
	return conv, nil
}
