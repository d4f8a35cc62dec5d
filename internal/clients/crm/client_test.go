package crm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
	)
	return client, srv
}

func authedCtx(token string) context.Context {
	return common.WithSession(context.Background(), &models.Session{ID: "s1", Token: token})
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]*models.Lead{})
	}))
	defer srv.Close()

	_, err := client.ListLeads(authedCtx("tok-abc"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestAnonymousRequestCarriesNoToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := client.SubmitLead(context.Background(), models.LeadInput{Name: "visitor", Email: "v@x.co", Source: "website"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestLogin(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "amal@propdesk.test", creds["email"])
		assert.Equal(t, "hunter2", creds["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-xyz",
			"user":  map[string]string{"_id": "u1", "username": "amal", "role": "Super Admin"},
		})
	}))
	defer srv.Close()

	token, user, err := client.Login(context.Background(), "amal@propdesk.test", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", token)
	assert.Equal(t, "amal", user.Username)
	assert.Equal(t, models.RoleSuperAdmin, user.CanonicalRole())
}

func TestLoginRejectedIsUnauthorized(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, _, err := client.Login(context.Background(), "a@b.co", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.True(t, IsUnauthorized(err))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsUnauthorized(io.EOF))
	assert.False(t, IsUnauthorized(nil))
}

func TestAPIErrorUnwrapsErrorField(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"missing field"}`))
	}))
	defer srv.Close()

	_, err := client.CreateLead(authedCtx("t"), models.LeadInput{})
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "missing field", apiErr.Message)
}

func TestImportPropertiesSendsMultipart(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/import", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "units.xlsx", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "spreadsheet-bytes", string(content))

		json.NewEncoder(w).Encode([]*models.Property{{ID: "p1", UnitNumber: "A-101"}})
	}))
	defer srv.Close()

	properties, err := client.ImportProperties(authedCtx("t"), "units.xlsx", strings.NewReader("spreadsheet-bytes"))
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "A-101", properties[0].UnitNumber)
}

func TestExportPropertiesStreams(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/export", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("binary-export"))
	}))
	defer srv.Close()

	body, contentType, err := client.ExportProperties(authedCtx("t"))
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "binary-export", string(data))
}

func TestCrudPaths(t *testing.T) {
	var method, path string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	ctx := authedCtx("t")

	_, err := client.UpdateUser(ctx, "u9", models.UserInput{Username: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/users/u9", path)

	require.NoError(t, client.DeleteLead(ctx, "l3"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/leads/l3", path)

	_, err = client.CreateRequest(ctx, models.RequestInput{PropertyID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/requests", path)

	_, err = client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/stats", path)
}

func TestCurrentUser(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-restore", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"_id": "u1", "username": "amal", "role": "Broker"})
	}))
	defer srv.Close()

	user, err := client.CurrentUser(authedCtx("tok-restore"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleBroker, user.CanonicalRole())
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&models.User{ID: "u1", Username: "amal"})
	}))
	defer srv.Close()

	requests := 0
	custom := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			requests++
			return http.DefaultTransport.RoundTrip(r)
		}),
	}

	client := NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(custom),
		WithRateLimit(1000),
	)

	user, err := client.CurrentUser(authedCtx("tok-abc"))
	require.NoError(t, err)
	assert.Equal(t, "amal", user.Username)
	assert.Equal(t, 1, requests)
}
