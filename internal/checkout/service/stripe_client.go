package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultProviderBaseURL = "https://api.stripe.com"

// providerClient posts checkout session forms to the payment provider.
// The base URL is overridable so tests can point it at a local server.
type providerClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func newProviderClient(apiKey, baseURL string) *providerClient {
	if baseURL == "" {
		baseURL = defaultProviderBaseURL
	}
	return &providerClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// createSession opens a hosted checkout session and returns its URL.
func (c *providerClient) createSession(ctx context.Context, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("provider response missing session url")
	}
	return session.URL, nil
}
