// Package client is a typed HTTP client for the contact API. It decodes
// the response envelope and turns unsuccessful envelopes into APIError
// values, so callers never look at raw status codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/KENZY004/contact-management/internal/model"
	"github.com/KENZY004/contact-management/internal/validate"
)

// Client calls the contact API at BaseURL. The zero http.Client applies
// no timeout; callers that want one inject their own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpClient: &http.Client{}}
}

// NewWithHTTPClient creates a Client that sends requests through the
// given http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// APIError is an unsuccessful response envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []validate.FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %d field error(s)", e.Message, len(e.Errors))
	}
	return e.Message
}

// envelope mirrors the uniform JSON wrapper used by every API response.
type envelope struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message"`
	Count     int                   `json:"count"`
	Data      json.RawMessage       `json:"data"`
	Errors    []validate.FieldError `json:"errors"`
	Timestamp string                `json:"timestamp"`
}

// List fetches all contacts, newest first.
func (c *Client) List(ctx context.Context) ([]model.Contact, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/contacts", nil)
	if err != nil {
		return nil, err
	}
	var contacts []model.Contact
	if err := json.Unmarshal(env.Data, &contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, nil
}

// Create submits a new contact and returns the stored record.
func (c *Client) Create(ctx context.Context, fields model.Fields) (model.Contact, error) {
	return c.contactCall(ctx, http.MethodPost, "/api/contacts", &fields)
}

// Update replaces the mutable fields of the contact with the given id.
func (c *Client) Update(ctx context.Context, id string, fields model.Fields) (model.Contact, error) {
	return c.contactCall(ctx, http.MethodPut, "/api/contacts/"+id, &fields)
}

// Delete removes the contact with the given id and returns the removed
// record.
func (c *Client) Delete(ctx context.Context, id string) (model.Contact, error) {
	return c.contactCall(ctx, http.MethodDelete, "/api/contacts/"+id, nil)
}

// Health returns the server's health timestamp.
func (c *Client) Health(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return "", err
	}
	return env.Timestamp, nil
}

func (c *Client) contactCall(ctx context.Context, method, path string, body *model.Fields) (model.Contact, error) {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return model.Contact{}, err
	}
	var contact model.Contact
	if err := json.Unmarshal(env.Data, &contact); err != nil {
		return model.Contact{}, fmt.Errorf("decode contact: %w", err)
	}
	return contact, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *model.Fields) (*envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	var env envelope
	if err := json.NewDecoder(response.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, &APIError{
			StatusCode: response.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}
	return &env, nil
}
