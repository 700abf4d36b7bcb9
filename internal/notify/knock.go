package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"respass/pkg/platform/sentinel"
)

// KnockClient talks to the Knock REST API.
type KnockClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewKnockClient(baseURL, secretKey string, httpClient *http.Client, logger *slog.Logger) *KnockClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &KnockClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type knockTriggerBody struct {
	Recipients []string       `json:"recipients"`
	Data       map[string]any `json:"data,omitempty"`
}

type knockUserBody struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone_number,omitempty"`
}

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("knock %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (c *KnockClient) Trigger(ctx context.Context, t Trigger) error {
	data := make(map[string]any, len(t.Data)+1)
	for k, v := range t.Data {
		data[k] = v
	}
	if len(t.Attachments) > 0 {
		data["attachments"] = t.Attachments
	}
	path := "/v1/workflows/" + url.PathEscape(t.Workflow) + "/trigger"
	return c.do(ctx, "trigger "+t.Workflow, http.MethodPost, path, knockTriggerBody{Recipients: t.Recipients, Data: data}, nil)
}

func (c *KnockClient) Identify(ctx context.Context, u User) error {
	body := knockUserBody{Name: u.Name, Email: u.Email, Phone: u.Phone}
	return c.do(ctx, "identify", http.MethodPut, "/v1/users/"+url.PathEscape(u.ID), body, nil)
}

func (c *KnockClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "delete user", http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, nil)
}

func (c *KnockClient) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, "get user", http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *KnockClient) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("knock %s: encode: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("knock %s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("knock %s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "knock response", "op", op, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("knock %s: %w", op, sentinel.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("knock %s: decode: %w", op, err)
		}
	}
	return nil
}
