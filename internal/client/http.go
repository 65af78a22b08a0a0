package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP is the API implementation backed by the JSON-over-HTTP endpoints.
type HTTP struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTP creates a client for the API at baseURL. The token, when set, is
// sent as a bearer Authorization header.
func NewHTTP(baseURL, token string) *HTTP {
	return &HTTP{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken replaces the bearer token, e.g. after a sign-in or refresh.
func (c *HTTP) SetToken(token string) {
	c.token = token
}

func (c *HTTP) do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return decoded, nil
}

// objectList extracts a list of JSON objects under key. A missing or
// malformed key is an error, never an empty list: "no reminders" and
// "broken payload" must stay distinguishable.
func objectList(decoded map[string]any, key string) ([]map[string]any, error) {
	raw, ok := decoded[key]
	if !ok {
		return nil, fmt.Errorf("response missing %q", key)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("response field %q is not a list", key)
	}

	objects := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response field %q contains a non-object element", key)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// object extracts a single JSON object under key. Some deployments return
// the entity bare rather than wrapped, so a decoded body carrying an id is
// accepted as-is.
func object(decoded map[string]any, key string) (map[string]any, error) {
	if raw, ok := decoded[key]; ok {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response field %q is not an object", key)
		}
		return obj, nil
	}
	if _, ok := decoded["id"]; ok {
		return decoded, nil
	}
	return nil, fmt.Errorf("response missing %q", key)
}

func (c *HTTP) ListReminders(ctx context.Context) ([]map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodGet, "/api/reminders", nil)
	if err != nil {
		return nil, err
	}
	return objectList(decoded, "reminders")
}

func (c *HTTP) CreateReminder(ctx context.Context, req CreateReminderRequest) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPost, "/api/reminders", req)
	if err != nil {
		return nil, err
	}
	return object(decoded, "reminder")
}

func (c *HTTP) ToggleReminder(ctx context.Context, id string) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPatch, "/api/reminders/"+id, nil)
	if err != nil {
		return nil, err
	}
	return object(decoded, "reminder")
}

func (c *HTTP) UpdateReminderTitle(ctx context.Context, id, title string) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPatch, "/api/reminders/"+id, map[string]any{
		"title": title,
	})
	if err != nil {
		return nil, err
	}
	return object(decoded, "reminder")
}

func (c *HTTP) UpdateReminderDueAt(ctx context.Context, id string, dueAt *time.Time, hasTime bool) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPatch, "/api/reminders/"+id, map[string]any{
		"dueAt":   dueAt, // nil marshals to null, clearing the schedule
		"hasTime": hasTime,
	})
	if err != nil {
		return nil, err
	}
	return object(decoded, "reminder")
}

func (c *HTTP) MoveReminder(ctx context.Context, id string, areaID *string) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPatch, "/api/reminders/"+id, map[string]any{
		"areaId": areaID,
	})
	if err != nil {
		return nil, err
	}
	return object(decoded, "reminder")
}

func (c *HTTP) DeleteReminder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/reminders/"+id, nil)
	return err
}

func (c *HTTP) ListAreas(ctx context.Context) ([]map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodGet, "/api/areas", nil)
	if err != nil {
		return nil, err
	}
	return objectList(decoded, "areas")
}

func (c *HTTP) CreateArea(ctx context.Context, label string) (map[string]any, error) {
	decoded, err := c.do(ctx, http.MethodPost, "/api/areas", map[string]any{
		"label": label,
	})
	if err != nil {
		return nil, err
	}
	return object(decoded, "area")
}

var _ API = (*HTTP)(nil)
