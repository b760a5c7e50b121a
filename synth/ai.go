package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIGenerator is the optional remote value-generation capability. The fill
// dispatcher treats any error as recoverable and falls back to the local
// Generator; implementations should not retry internally.
type AIGenerator interface {
	Generate(ctx context.Context, fieldType, label, contextTemplate string) (string, error)
}

// RemoteGenerator calls an HTTP value-generation endpoint. The request is a
// JSON POST; the response body is either a JSON {"value": "..."} object or a
// plain string.
type RemoteGenerator struct {
	url    string
	client *http.Client
}

// NewRemoteGenerator creates a RemoteGenerator that POSTs to url.
// If client is nil, a default client with 5s timeout is used. Callers
// wanting per-call deadlines should pass a context with one.
func NewRemoteGenerator(url string, client *http.Client) *RemoteGenerator {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteGenerator{url: url, client: client}
}

type remoteRequest struct {
	FieldType string `json:"field_type"`
	Label     string `json:"label"`
	Context   string `json:"context,omitempty"`
}

type remoteResponse struct {
	Value string `json:"value"`
}

// Generate implements AIGenerator.
func (r *RemoteGenerator) Generate(ctx context.Context, fieldType, label, contextTemplate string) (string, error) {
	body, err := json.Marshal(remoteRequest{FieldType: fieldType, Label: label, Context: contextTemplate})
	if err != nil {
		return "", fmt.Errorf("synth: marshal remote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("synth: build remote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("synth: remote generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("synth: remote generate: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("synth: read remote response: %w", err)
	}

	var parsed remoteResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Value != "" {
		return parsed.Value, nil
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("synth: remote generate: empty response")
	}
	return value, nil
}
