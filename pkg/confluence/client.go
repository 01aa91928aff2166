// Package confluence is a minimal REST client for the Confluence content
// API, covering the handful of resources the lifecycle manager touches.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/nwillems/confluence-lifecycle/models"
)

// Client is a Confluence API client.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Confluence API client. Cloud instances serve the
// content API under /wiki; self-hosted instances serve it at the root.
func NewClient(host, username, password string, cloud bool) *Client {
	base := host
	if cloud {
		base = host + "/wiki"
	}

	return &Client{
		baseURL:  base,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Confluence Cloud throttles aggressively; stay well under the
		// published ceiling.
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// APIError is a non-2xx response from the Confluence API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("confluence API error: %s: %s", e.Status, e.Body)
}

// doJSON performs a request and decodes a JSON response into result.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(respBody), 200),
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ListPages fetches one batch of page summaries from a space, starting at
// the given offset.
func (c *Client) ListPages(ctx context.Context, space string, start, limit int) ([]models.PageSummary, error) {
	query := url.Values{}
	query.Set("type", "page")
	query.Set("spaceKey", space)
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(limit))

	var results contentResults
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/content", query, nil, "", &results); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]models.PageSummary, 0, len(results.Results))
	for _, r := range results.Results {
		pages = append(pages, models.PageSummary{ID: r.ID, Title: r.Title})
	}

	return pages, nil
}

// GetLabels fetches the labels currently attached to a page, in API order.
// A page with no labels yields a nil slice.
func (c *Client) GetLabels(ctx context.Context, pageID string) ([]string, error) {
	var results labelResults
	path := fmt.Sprintf("/rest/api/content/%s/label", pageID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, "", &results); err != nil {
		return nil, fmt.Errorf("get labels: %w", err)
	}

	if len(results.Results) == 0 {
		return nil, nil
	}

	labels := make([]string, 0, len(results.Results))
	for _, r := range results.Results {
		labels = append(labels, r.Name)
	}

	return labels, nil
}

// AddLabel attaches a global label to a page.
func (c *Client) AddLabel(ctx context.Context, pageID, label string) error {
	payload := []map[string]string{
		{"prefix": "global", "name": label},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal label: %w", err)
	}

	path := fmt.Sprintf("/rest/api/content/%s/label", pageID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, bytes.NewReader(jsonData), "application/json", nil); err != nil {
		return fmt.Errorf("add label: %w", err)
	}

	return nil
}

// RemoveLabel detaches a label from a page.
func (c *Client) RemoveLabel(ctx context.Context, pageID, label string) error {
	query := url.Values{}
	query.Set("name", label)

	path := fmt.Sprintf("/rest/api/content/%s/label", pageID)
	if err := c.doJSON(ctx, http.MethodDelete, path, query, nil, "", nil); err != nil {
		return fmt.Errorf("remove label: %w", err)
	}

	return nil
}

// GetHistory fetches creator and last-edit metadata for a page.
func (c *Client) GetHistory(ctx context.Context, pageID string) (*PageHistory, error) {
	var record historyRecord
	path := fmt.Sprintf("/rest/api/content/%s/history", pageID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, "", &record); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return &PageHistory{
		CreatedBy:    record.CreatedBy.identity(),
		LastEditedBy: record.LastUpdated.By.identity(),
		When:         record.LastUpdated.When,
	}, nil
}

// UpdatePage replaces a page's title and storage-format body, bumping the
// version number the API requires for updates.
func (c *Client) UpdatePage(ctx context.Context, pageID, title, body string) error {
	query := url.Values{}
	query.Set("expand", "version,space")

	var current versionedContent
	path := fmt.Sprintf("/rest/api/content/%s", pageID)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, "", &current); err != nil {
		return fmt.Errorf("get page version: %w", err)
	}

	payload := map[string]interface{}{
		"id":    pageID,
		"type":  "page",
		"title": title,
		"version": map[string]int{
			"number": current.Version.Number + 1,
		},
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          body,
				"representation": "storage",
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}

	if err := c.doJSON(ctx, http.MethodPut, path, nil, bytes.NewReader(jsonData), "application/json", nil); err != nil {
		return fmt.Errorf("update page: %w", err)
	}

	return nil
}

// AttachFile uploads a file as an attachment on a page, replacing any
// existing attachment with the same filename.
func (c *Client) AttachFile(ctx context.Context, pageID, filename string, data []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close form writer: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/rest/api/content/%s/child/attachment?allowDuplicated=false", c.baseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	// Required by the attachment endpoint to bypass XSRF checks.
	req.Header.Set("X-Atlassian-Token", "nocheck")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(respBody), 200),
		}
	}

	return nil
}
