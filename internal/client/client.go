// Package client calls the fitness-planner HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"fitness-planner/internal/plan"
)

// APIError is a non-2xx answer from the API. Raw carries the provider text
// for malformed plans and is meant for logs, not for display.
type APIError struct {
	Status  int
	Message string
	Raw     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
		Raw   string `json:"raw"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error, Raw: body.Raw}
}

// GeneratePlan requests a plan. The result is validated with plan.Parse
// before it is returned.
func (c *Client) GeneratePlan(ctx context.Context, profile plan.UserProfile) (*plan.FitnessPlan, error) {
	resp, err := c.post(ctx, "/api/generate", profile)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var body struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("generate plan: decode: %w", err)
	}
	return plan.Parse(string(body.Result))
}

// ImageURL requests an image URL for prompt.
func (c *Client) ImageURL(ctx context.Context, prompt string) (string, error) {
	resp, err := c.post(ctx, "/api/image", map[string]string{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	var body struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("image: decode: %w", err)
	}
	return body.Image, nil
}

// Export asks the API to render p and copies the document to w. It returns
// the filename suggested by the server.
func (c *Client) Export(ctx context.Context, w io.Writer, p *plan.FitnessPlan, name, format string) (string, error) {
	resp, err := c.post(ctx, "/api/export", map[string]any{"name": name, "plan": p, "format": format})
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", nil
	}
	return params["filename"], nil
}
