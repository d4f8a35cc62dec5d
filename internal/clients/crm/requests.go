package crm

import (
	"context"
	"fmt"

	"github.com/bobmcallan/propdesk/internal/models"
)

// ListRequests retrieves the full service-request collection.
func (c *Client) ListRequests(ctx context.Context) ([]*models.Request, error) {
	var requests []*models.Request
	if err := c.get(ctx, "/api/requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateRequest creates a service request and returns the record with its
// assigned id.
func (c *Client) CreateRequest(ctx context.Context, input models.RequestInput) (*models.Request, error) {
	var request models.Request
	if err := c.post(ctx, "/api/requests", input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateRequest replaces a service request record by id.
func (c *Client) UpdateRequest(ctx context.Context, id string, input models.RequestInput) (*models.Request, error) {
	var request models.Request
	if err := c.put(ctx, fmt.Sprintf("/api/requests/%s", id), input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// DeleteRequest removes a service request record by id.
func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/api/requests/%s", id))
}
