// Package api is the HTTP client for the hotel management REST backend.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request when the caller does not set one
const DefaultTimeout = 10 * time.Second

// Client talks to the hotel management backend
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a client for baseURL (e.g. http://localhost:8080/api)
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

// Clients returns the /clientes resource
func (c *Client) Clients() *ClientService {
	return &ClientService{client: c}
}
