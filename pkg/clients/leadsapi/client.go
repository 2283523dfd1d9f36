package leadsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"backyard-leads/pkg/models"
)

// Client defines the interface for the backyard leads backend API
type Client interface {
	ValidateLocation(ctx context.Context, location string) error
	FetchLeads(ctx context.Context, location string, maxProperties int) (*models.LeadBatch, error)
}

// APIError is any failed call against the backend: a non-2xx response or a
// transport failure. Detail carries the backend's human-readable reason when
// one was returned; callers fall back to their own screen-specific message
// when it is empty.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("leads api error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("leads api error (status %d)", e.StatusCode)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new leads API client. The base URL is resolved once at
// startup from configuration and not revalidated per call.
func NewClient(baseURL string, logger *slog.Logger) Client {
	return &clientImpl{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // lead discovery runs imagery analysis upstream
		},
		logger: logger,
	}
}

// ValidateLocation asks the backend whether the free-text location resolves
// to a US place. A nil return means it does.
func (c *clientImpl) ValidateLocation(ctx context.Context, location string) error {
	payload := map[string]interface{}{
		"location": location,
	}

	body, err := c.post(ctx, "/api/v1/validate-location", payload)
	if err != nil {
		return err
	}
	defer body.Close()

	// Success body is unspecified; drain it so the connection can be reused
	io.Copy(io.Discard, body)

	c.logger.Debug("location validated", "location", location)
	return nil
}

// FetchLeads requests up to maxProperties scored leads for the location.
// The returned batch may be smaller than requested.
func (c *clientImpl) FetchLeads(ctx context.Context, location string, maxProperties int) (*models.LeadBatch, error) {
	payload := map[string]interface{}{
		"location":       location,
		"max_properties": maxProperties,
	}

	body, err := c.post(ctx, "/api/v1/leads", payload)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var batch models.LeadBatch
	if err := json.NewDecoder(body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("error parsing leads response: %w", err)
	}

	c.logger.Debug("fetched leads", "location", location, "requested", maxProperties, "returned", len(batch.Leads))
	return &batch, nil
}

// post sends a JSON body and returns the response body on any 2xx status.
// Non-2xx responses are decoded for their {"detail": ...} reason and
// returned as *APIError; transport failures become *APIError with status 0.
func (c *clientImpl) post(ctx context.Context, path string, payload map[string]interface{}) (io.ReadCloser, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("leads api unreachable", "path", path, "error", err)
		return nil, &APIError{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()

		var failure struct {
			Detail string `json:"detail"`
		}
		raw, _ := io.ReadAll(resp.Body)
		json.Unmarshal(raw, &failure)

		c.logger.Warn("leads api rejected request", "path", path, "status", resp.StatusCode, "detail", failure.Detail)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: failure.Detail}
	}

	return resp.Body, nil
}
