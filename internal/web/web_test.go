package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/propdesk/internal/app"
	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/i18n"
	"github.com/bobmcallan/propdesk/internal/interfaces"
	"github.com/bobmcallan/propdesk/internal/models"
	"github.com/bobmcallan/propdesk/internal/session"
)

var _ interfaces.CRMClient = (*fakeCRM)(nil)

// fakeCRM is an in-memory stand-in for the remote CRM API.
type fakeCRM struct {
	mu sync.Mutex

	users      []*models.User
	passwords  map[string]string // email -> password
	tokens     map[string]*models.User
	properties []*models.Property
	leads      []*models.Lead
	requests   []*models.Request
	contacts   []models.Contact
	captured   []models.LeadInput // public lead-capture submissions
	stats      *models.Stats

	failWith error // when set, every authenticated call fails with it
	nextID   int
}

func newFakeCRM() *fakeCRM {
	return &fakeCRM{
		passwords: make(map[string]string),
		tokens:    make(map[string]*models.User),
		stats:     &models.Stats{},
	}
}

func (f *fakeCRM) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// seedUser registers an account the fake will accept credentials for.
func (f *fakeCRM) seedUser(username, email, password, role string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{ID: f.id("u"), Username: username, Email: email, Role: role}
	f.users = append(f.users, user)
	f.passwords[email] = password
	return user
}

func (f *fakeCRM) authed(ctx context.Context) error {
	if f.failWith != nil {
		return f.failWith
	}
	token := common.ResolveToken(ctx)
	if _, ok := f.tokens[token]; !ok {
		return &crm.APIError{StatusCode: http.StatusUnauthorized, Message: "Not authorized"}
	}
	return nil
}

func (f *fakeCRM) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return "", nil, &crm.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials", Endpoint: "/api/users/login"}
	}
	for _, u := range f.users {
		if u.Email == email {
			token := f.id("tok")
			f.tokens[token] = u
			return token, u, nil
		}
	}
	return "", nil, &crm.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
}

func (f *fakeCRM) Signup(ctx context.Context, input models.SignupInput) (string, *models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{ID: f.id("u"), Username: input.Username, Email: input.Email, Role: "Admin"}
	f.users = append(f.users, user)
	f.passwords[input.Email] = input.Password
	token := f.id("tok")
	f.tokens[token] = user
	return token, user, nil
}

func (f *fakeCRM) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if user, ok := f.tokens[common.ResolveToken(ctx)]; ok {
		return user, nil
	}
	return nil, &crm.APIError{StatusCode: http.StatusUnauthorized, Message: "Not authorized"}
}

func (f *fakeCRM) ListUsers(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	return append([]*models.User(nil), f.users...), nil
}

func (f *fakeCRM) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	user := &models.User{ID: f.id("u"), Username: input.Username, Email: input.Email, Role: input.Role, Permissions: input.Permissions}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeCRM) UpdateUser(ctx context.Context, id string, input models.UserInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			u.Username = input.Username
			u.Email = input.Email
			u.Role = input.Role
			u.Permissions = input.Permissions
			return u, nil
		}
	}
	return nil, &crm.APIError{StatusCode: http.StatusNotFound, Message: "User not found"}
}

func (f *fakeCRM) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return err
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return &crm.APIError{StatusCode: http.StatusNotFound, Message: "User not found"}
}

func (f *fakeCRM) ListProperties(ctx context.Context) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	return append([]*models.Property(nil), f.properties...), nil
}

func (f *fakeCRM) CreateProperty(ctx context.Context, input models.PropertyInput) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	p := &models.Property{ID: f.id("p"), UnitNumber: input.UnitNumber, Name: input.Name, Area: input.Area, Status: input.Status, RentPrice: input.RentPrice, SalePrice: input.SalePrice}
	f.properties = append(f.properties, p)
	return p, nil
}

func (f *fakeCRM) UpdateProperty(ctx context.Context, id string, input models.PropertyInput) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	for _, p := range f.properties {
		if p.ID == id {
			p.UnitNumber = input.UnitNumber
			p.Name = input.Name
			p.Area = input.Area
			p.Status = input.Status
			return p, nil
		}
	}
	return nil, &crm.APIError{StatusCode: http.StatusNotFound, Message: "Property not found"}
}

func (f *fakeCRM) DeleteProperty(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return err
	}
	for i, p := range f.properties {
		if p.ID == id {
			f.properties = append(f.properties[:i], f.properties[i+1:]...)
			return nil
		}
	}
	return &crm.APIError{StatusCode: http.StatusNotFound, Message: "Property not found"}
}

// ImportProperties replaces the collection: one property per uploaded line.
func (f *fakeCRM) ImportProperties(ctx context.Context, filename string, file io.Reader) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.properties = nil
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		f.properties = append(f.properties, &models.Property{ID: f.id("p"), UnitNumber: line, Status: "Available"})
	}
	return append([]*models.Property(nil), f.properties...), nil
}

func (f *fakeCRM) ExportProperties(ctx context.Context) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, "", err
	}
	return io.NopCloser(strings.NewReader("export-bytes")), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (f *fakeCRM) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	return append([]*models.Lead(nil), f.leads...), nil
}

func (f *fakeCRM) CreateLead(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	l := &models.Lead{ID: f.id("l"), Name: input.Name, Email: input.Email, Phone: input.Phone, Status: input.Status, Source: input.Source, AssignedTo: input.AssignedTo}
	f.leads = append(f.leads, l)
	return l, nil
}

func (f *fakeCRM) UpdateLead(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	for _, l := range f.leads {
		if l.ID == id {
			l.Name = input.Name
			l.Email = input.Email
			l.Status = input.Status
			l.AssignedTo = input.AssignedTo
			return l, nil
		}
	}
	return nil, &crm.APIError{StatusCode: http.StatusNotFound, Message: "Lead not found"}
}

func (f *fakeCRM) DeleteLead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return err
	}
	for i, l := range f.leads {
		if l.ID == id {
			f.leads = append(f.leads[:i], f.leads[i+1:]...)
			return nil
		}
	}
	return &crm.APIError{StatusCode: http.StatusNotFound, Message: "Lead not found"}
}

func (f *fakeCRM) ImportLeads(ctx context.Context, filename string, file io.Reader) ([]*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.leads = nil
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		f.leads = append(f.leads, &models.Lead{ID: f.id("l"), Name: line, Status: "New"})
	}
	return append([]*models.Lead(nil), f.leads...), nil
}

func (f *fakeCRM) ListRequests(ctx context.Context) ([]*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	return append([]*models.Request(nil), f.requests...), nil
}

func (f *fakeCRM) CreateRequest(ctx context.Context, input models.RequestInput) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	req := &models.Request{ID: f.id("r"), PropertyID: input.PropertyID, ClientName: input.ClientName, ClientPhone: input.ClientPhone, RequestType: input.RequestType, Status: input.Status}
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeCRM) UpdateRequest(ctx context.Context, id string, input models.RequestInput) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	for _, req := range f.requests {
		if req.ID == id {
			req.Status = input.Status
			req.RequestType = input.RequestType
			return req, nil
		}
	}
	return nil, &crm.APIError{StatusCode: http.StatusNotFound, Message: "Request not found"}
}

func (f *fakeCRM) DeleteRequest(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return err
	}
	for i, req := range f.requests {
		if req.ID == id {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return nil
		}
	}
	return &crm.APIError{StatusCode: http.StatusNotFound, Message: "Request not found"}
}

func (f *fakeCRM) SubmitLead(ctx context.Context, input models.LeadInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captured = append(f.captured, input)
	f.leads = append(f.leads, &models.Lead{ID: f.id("l"), Name: input.Name, Email: input.Email, Phone: input.Phone, Source: input.Source, Status: "New"})
	return nil
}

func (f *fakeCRM) SubmitContact(ctx context.Context, input models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, input)
	return nil
}

func (f *fakeCRM) Stats(ctx context.Context) (*models.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed(ctx); err != nil {
		return nil, err
	}
	return f.stats, nil
}

// testEnv is a full console wired over the fake CRM.
type testEnv struct {
	crm    *fakeCRM
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Sessions.Path = filepath.Join(t.TempDir(), "sessions.json")
	cfg.Sessions.Secret = "test-cookie-secret"

	fake := newFakeCRM()
	logger := common.NewSilentLogger()

	store, err := session.NewStore(cfg.Sessions.Path, time.Hour, fake, logger)
	require.NoError(t, err)

	bundle, err := i18n.NewBundle()
	require.NoError(t, err)

	a := &app.App{
		Config:      cfg,
		Logger:      logger,
		CRM:         fake,
		Sessions:    store,
		I18n:        bundle,
		StartupTime: time.Now(),
	}

	srv := httptest.NewServer(NewServer(a).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		crm:    fake,
		server: srv,
		client: &http.Client{Jar: jar},
	}
}

// noRedirectClient keeps the jar but stops at the first redirect.
func (e *testEnv) noRedirectClient() *http.Client {
	return &http.Client{
		Jar: e.client.Jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// login seeds an account with the given role and logs the client in.
func (e *testEnv) login(t *testing.T, role string) *models.User {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(role, " ", "")) + "@propdesk.test"
	user := e.crm.seedUser("user-"+role, email, "hunter2", role)

	resp, _ := e.postForm(t, "/login", url.Values{
		"email":    {email},
		"password": {"hunter2"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login should land on the dashboard")
	return user
}
