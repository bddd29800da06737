package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"argus/core"
	"argus/metrics"
)

// Datasource is one configured event source.
type Datasource struct {
	Name string `json:"name"`
}

// ListDatasources returns the configured datasources.
func (c *Client) ListDatasources(ctx context.Context) ([]Datasource, error) {
	var datasources []Datasource
	if err := c.get(ctx, "/management/datasources", nil, &datasources); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("listDatasources").Inc()
		return nil, fmt.Errorf("failed to list datasources: %w", err)
	}
	return datasources, nil
}

// ListAlertsForRule pages through a rule's historical evaluation alerts.
func (c *Client) ListAlertsForRule(ctx context.Context, id string, page int) (core.AlertPage, error) {
	params := url.Values{
		"rule": {id},
		"page": {strconv.Itoa(page)},
	}
	var alerts core.AlertPage
	if err := c.get(ctx, "/alerts", params, &alerts); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("listAlertsForRule").Inc()
		return core.AlertPage{}, fmt.Errorf("failed to list alerts for rule %s: %w", id, err)
	}
	return alerts, nil
}
