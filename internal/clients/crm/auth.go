package crm

import (
	"context"

	"github.com/bobmcallan/propdesk/internal/models"
)

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp authResponse
	if err := c.post(ctx, "/api/users/login", payload, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Signup registers a new account and returns its token and profile.
func (c *Client) Signup(ctx context.Context, input models.SignupInput) (string, *models.User, error) {
	var resp authResponse
	if err := c.post(ctx, "/api/auth/signup", input, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// CurrentUser fetches the profile of the token in the session context.
// Used by the session store to restore a persisted session.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
