package crm

import (
	"context"
	"fmt"

	"github.com/bobmcallan/propdesk/internal/models"
)

// ListUsers retrieves the full user collection.
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user and returns the record with its assigned id.
func (c *Client) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.post(ctx, "/api/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user record by id.
func (c *Client) UpdateUser(ctx context.Context, id string, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.put(ctx, fmt.Sprintf("/api/users/%s", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user record by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/api/users/%s", id))
}
