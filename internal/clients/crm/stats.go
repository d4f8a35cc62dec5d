package crm

import (
	"context"

	"github.com/bobmcallan/propdesk/internal/models"
)

// Stats fetches the precomputed dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.get(ctx, "/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
