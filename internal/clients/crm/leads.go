package crm

import (
	"context"
	"fmt"
	"io"

	"github.com/bobmcallan/propdesk/internal/models"
)

// ListLeads retrieves the full lead collection.
func (c *Client) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	var leads []*models.Lead
	if err := c.get(ctx, "/api/leads", &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// CreateLead creates a lead and returns the record with its assigned id.
func (c *Client) CreateLead(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	var lead models.Lead
	if err := c.post(ctx, "/api/leads", input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead replaces a lead record by id.
func (c *Client) UpdateLead(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error) {
	var lead models.Lead
	if err := c.put(ctx, fmt.Sprintf("/api/leads/%s", id), input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// DeleteLead removes a lead record by id.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/api/leads/%s", id))
}

// ImportLeads uploads a spreadsheet of leads and returns the post-import
// collection.
func (c *Client) ImportLeads(ctx context.Context, filename string, file io.Reader) ([]*models.Lead, error) {
	var leads []*models.Lead
	if err := c.importSpreadsheet(ctx, "/api/leads/import", filename, file, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// SubmitLead posts a lead-capture form submission from the public marketing
// site. No token is attached; the endpoint is public.
func (c *Client) SubmitLead(ctx context.Context, input models.LeadInput) error {
	return c.post(ctx, "/api/leads", input, nil)
}
