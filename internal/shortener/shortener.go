package shortener

//go:generate mockgen -source=shortener.go -destination=mocks/shortener_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the service answers 200 with no URL.
var ErrEmptyResponse = errors.New("shortener returned an empty response")

// Shortener creates short URLs through an external service.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

type tinyURLClient struct {
	endpoint string
	client   *http.Client
}

// NewTinyURLClient creates a client for a TinyURL-style api-create endpoint,
// which takes the long URL in the url query parameter and answers with the
// short URL as plain text.
func NewTinyURLClient(endpoint string) Shortener {
	return &tinyURLClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Shorten makes exactly one request; failures are not retried.
func (c *tinyURLClient) Shorten(ctx context.Context, longURL string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid shortener endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", longURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build shortener request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call shortener: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("failed to read shortener response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener returned status %d", resp.StatusCode)
	}

	short := strings.TrimSpace(string(body))
	if short == "" {
		return "", ErrEmptyResponse
	}
	return short, nil
}
