// Package supabase is a minimal PostgREST client for Supabase tables
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// Error is a non-2xx PostgREST response
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from PostgREST
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client talks to the REST endpoint of a Supabase project
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		URL:        baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Query selects rows from table. Keys of query are PostgREST parameters,
// e.g. {"id": "eq.4", "order": "timestamp.asc"}.
func (c *Client) Query(ctx context.Context, table string, query map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, table, query, nil, "")
}

// Insert inserts data (a row or a slice of rows) and returns the stored representation
func (c *Client) Insert(ctx context.Context, table string, data any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, table, nil, data, "return=representation")
}

// Upsert inserts or merges rows, detecting conflicts on the onConflict columns
func (c *Client) Upsert(ctx context.Context, table string, data any, onConflict string) ([]byte, error) {
	query := map[string]string{"on_conflict": onConflict}
	return c.do(ctx, http.MethodPost, table, query, data, "return=representation,resolution=merge-duplicates")
}

// Update patches the row with the given id
func (c *Client) Update(ctx context.Context, table, id string, data any) ([]byte, error) {
	return c.UpdateWhere(ctx, table, map[string]string{"id": "eq." + id}, data)
}

// UpdateWhere patches every row matching query
func (c *Client) UpdateWhere(ctx context.Context, table string, query map[string]string, data any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, table, query, data, "return=representation")
}

// Delete removes the row with the given id
func (c *Client) Delete(ctx context.Context, table, id string) error {
	return c.DeleteWhere(ctx, table, map[string]string{"id": "eq." + id})
}

// DeleteWhere removes every row matching query. PostgREST refuses
// unfiltered deletes, so callers wanting to clear a table pass a filter
// matching all rows such as {"id": "gte.0"}.
func (c *Client) DeleteWhere(ctx context.Context, table string, query map[string]string) error {
	_, err := c.do(ctx, http.MethodDelete, table, query, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, table string, query map[string]string, data any, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", table, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := url.Values{}
		for key, value := range query {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", table, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
