package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"argus/core"
	"argus/metrics"
)

// ListAttackTactics returns the ATT&CK tactics of a matrix, optionally
// with each tactic's technique set included.
func (c *Client) ListAttackTactics(ctx context.Context, matrix string, includeTechniques bool) ([]core.Tactic, error) {
	params := url.Values{
		"matrix":   {matrix},
		"complete": {strconv.FormatBool(includeTechniques)},
	}
	var resp struct {
		Tactics []core.Tactic `json:"tactics"`
	}
	if err := c.get(ctx, "/attack/tactics", params, &resp); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("listAttackTactics").Inc()
		return nil, fmt.Errorf("failed to list attack tactics for matrix %s: %w", matrix, err)
	}
	return resp.Tactics, nil
}
