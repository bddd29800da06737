package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"argus/core"
	"argus/metrics"
)

// ListFields returns the available fields of one datasource.
func (c *Client) ListFields(ctx context.Context, datasource string) ([]core.FieldCatalogEntry, error) {
	params := url.Values{"datasource": {datasource}}
	var fields []core.FieldCatalogEntry
	if err := c.get(ctx, "/fields", params, &fields); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("listFields").Inc()
		return nil, fmt.Errorf("failed to list fields for datasource %s: %w", datasource, err)
	}
	return fields, nil
}

// SuggestFieldValues returns example values for a field. Rate limited:
// the editor fires one of these per field change and the suggestions are
// advisory, so shedding excess calls is preferable to queueing them.
func (c *Client) SuggestFieldValues(ctx context.Context, field string) ([]string, error) {
	if err := c.suggestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("suggestion fetch cancelled: %w", err)
	}
	params := url.Values{"field": {field}}
	var values []string
	if err := c.get(ctx, "/fields/suggestion", params, &values); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("suggestFieldValues").Inc()
		return nil, fmt.Errorf("failed to fetch suggestions for field %s: %w", field, err)
	}
	return values, nil
}

// ProfileField returns a time-bucketed aggregate series over one field.
func (c *Client) ProfileField(ctx context.Context, req core.ProfileRequest) ([]core.DataPoint, error) {
	var points []core.DataPoint
	if err := c.send(ctx, http.MethodPost, "/fields/profiler", req, &points); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("profileField").Inc()
		return nil, fmt.Errorf("failed to profile field %s: %w", req.Field, err)
	}
	return points, nil
}
