// Package interfaces defines the contracts between PropDesk components.
package interfaces

import (
	"context"
	"io"

	"github.com/bobmcallan/propdesk/internal/models"
)

// CRMClient is the client for the remote CRM REST API. Every call is a
// direct request/response round trip: no retries, no caching. Authenticated
// operations resolve the bearer token from the session in ctx; public
// operations (login, signup, lead capture) send none.
type CRMClient interface {
	// Auth
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Signup(ctx context.Context, input models.SignupInput) (string, *models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	// Users
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, input models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, input models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Properties
	ListProperties(ctx context.Context) ([]*models.Property, error)
	CreateProperty(ctx context.Context, input models.PropertyInput) (*models.Property, error)
	UpdateProperty(ctx context.Context, id string, input models.PropertyInput) (*models.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	ImportProperties(ctx context.Context, filename string, file io.Reader) ([]*models.Property, error)
	ExportProperties(ctx context.Context) (io.ReadCloser, string, error)

	// Leads
	ListLeads(ctx context.Context) ([]*models.Lead, error)
	CreateLead(ctx context.Context, input models.LeadInput) (*models.Lead, error)
	UpdateLead(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	ImportLeads(ctx context.Context, filename string, file io.Reader) ([]*models.Lead, error)

	// Requests
	ListRequests(ctx context.Context) ([]*models.Request, error)
	CreateRequest(ctx context.Context, input models.RequestInput) (*models.Request, error)
	UpdateRequest(ctx context.Context, id string, input models.RequestInput) (*models.Request, error)
	DeleteRequest(ctx context.Context, id string) error

	// Public capture
	SubmitLead(ctx context.Context, input models.LeadInput) error
	SubmitContact(ctx context.Context, input models.Contact) error

	// Dashboard
	Stats(ctx context.Context) (*models.Stats, error)
}
