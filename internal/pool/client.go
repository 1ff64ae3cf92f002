// Package pool provides the client for the club's remote interview
// pool service, where pairing happens. Submission is fire-and-forget:
// the grid keeps its local state whether or not the remote call lands.
package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tandemclub/tandem/internal/avail"
)

// ErrNoBaseURL indicates the pool endpoint is not configured.
var ErrNoBaseURL = errors.New("pool base URL is not configured")

const defaultTimeout = 15 * time.Second

// SignupRequest is the payload for the interview pool signup endpoint.
type SignupRequest struct {
	UserID       string   `json:"userId"`
	Availability [][]bool `json:"availability"`
}

// Client talks to the interview pool API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a pool client. A zero timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Signup submits the member's availability to the pool. The matrix is
// sent as nested booleans; an idempotency key header lets the server
// drop an accidental duplicate. Any non-2xx response is an error.
func (c *Client) Signup(ctx context.Context, memberID string, m *avail.Matrix) error {
	if c.baseURL == "" {
		return ErrNoBaseURL
	}

	body, err := json.Marshal(SignupRequest{
		UserID:       memberID,
		Availability: m.Bools(),
	})
	if err != nil {
		return fmt.Errorf("encoding signup payload: %w", err)
	}

	url := c.baseURL + "/pool/signup"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting to pool: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pool signup returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	return nil
}
