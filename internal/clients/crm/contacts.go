package crm

import (
	"context"

	"github.com/bobmcallan/propdesk/internal/models"
)

// SubmitContact posts a demo-request form submission. Public endpoint, no
// token attached.
func (c *Client) SubmitContact(ctx context.Context, input models.Contact) error {
	return c.post(ctx, "/api/contacts", input, nil)
}
