package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

const defaultDatasetteTimeout = 30 * time.Second

// DatasetteClient pushes rows to a remote Datasette through the datasette-insert plugin.
type DatasetteClient struct {
	baseURL  *url.URL
	rawURL   string
	database string
	apiToken string
	client   *http.Client
}

// NewDatasetteClient creates a client inserting into database on the instance at baseURL.
func NewDatasetteClient(baseURL, database, apiToken string) *DatasetteClient {
	return &DatasetteClient{
		rawURL:   baseURL,
		database: database,
		apiToken: apiToken,
		client:   &http.Client{Timeout: defaultDatasetteTimeout},
	}
}

// Connect validates the base URL. No request is made.
func (c *DatasetteClient) Connect(_ context.Context) error {
	u, err := url.Parse(c.rawURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", c.rawURL)
	}
	c.baseURL = u
	return nil
}

// CreateTable is a no-op; the insert plugin creates tables on first write.
func (c *DatasetteClient) CreateTable(_ context.Context, _ string) error {
	return nil
}

// Upsert posts records to /-/insert/<database>/<table>, keyed on the id column.
func (c *DatasetteClient) Upsert(ctx context.Context, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}
	if c.baseURL == nil {
		return fmt.Errorf("datasette client not connected")
	}

	u := *c.baseURL
	u.Path = path.Join(u.Path, "-/insert", c.database, table)
	u.RawQuery = url.Values{"pk": {"id"}, "upsert": {"1"}}.Encode()

	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]any
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(body, &errResp); err != nil {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("API error (status %d): %v", resp.StatusCode, errResp)
	}
	return nil
}

func (c *DatasetteClient) Close() error {
	return nil
}
