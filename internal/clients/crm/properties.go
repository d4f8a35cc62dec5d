package crm

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bobmcallan/propdesk/internal/models"
)

// ListProperties retrieves the full property collection.
func (c *Client) ListProperties(ctx context.Context) ([]*models.Property, error) {
	var properties []*models.Property
	if err := c.get(ctx, "/api/properties", &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// CreateProperty creates a property and returns the record with its assigned id.
func (c *Client) CreateProperty(ctx context.Context, input models.PropertyInput) (*models.Property, error) {
	var property models.Property
	if err := c.post(ctx, "/api/properties", input, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty replaces a property record by id.
func (c *Client) UpdateProperty(ctx context.Context, id string, input models.PropertyInput) (*models.Property, error) {
	var property models.Property
	if err := c.put(ctx, fmt.Sprintf("/api/properties/%s", id), input, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// DeleteProperty removes a property record by id.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/api/properties/%s", id))
}

// ImportProperties uploads a spreadsheet as multipart form data. On success
// the server returns the post-import collection, which replaces any local
// copy wholesale.
func (c *Client) ImportProperties(ctx context.Context, filename string, file io.Reader) ([]*models.Property, error) {
	var properties []*models.Property
	if err := c.importSpreadsheet(ctx, "/api/properties/import", filename, file, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// ExportProperties fetches the spreadsheet export as a binary stream. The
// caller owns the returned ReadCloser.
func (c *Client) ExportProperties(ctx context.Context) (io.ReadCloser, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/properties/export", nil, "")
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", newAPIError(resp, "/api/properties/export")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return resp.Body, contentType, nil
}

// importSpreadsheet posts a file under the "file" form field and decodes the
// returned collection.
func (c *Client) importSpreadsheet(ctx context.Context, path, filename string, file io.Reader, result interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	resp, err := c.do(ctx, http.MethodPost, path, pr, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, path)
	}

	if err := decodeBody(resp.Body, result); err != nil {
		return fmt.Errorf("failed to decode import response: %w", err)
	}
	return nil
}
