// Package backend is the REST client for the interview service: it creates
// conversation records, drives server-authoritative interview sessions,
// resolves realtime credentials through the bot-connect relay, and lists
// session recordings.
package backend

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ServerURLEnvVar names the environment variable consulted for the service
// base URL when none is configured explicitly.
const ServerURLEnvVar = "JASTALK_SERVER_URL"

type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithBaseURL points the client at an explicit service base URL, taking
// precedence over the environment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
}

// WithHTTPTransport replaces the underlying round tripper. The default is
// the instrumented stdlib transport.
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.http.SetTransport(transport)
	}
}

// NewClient builds a service client. The base URL comes from options or
// from JASTALK_SERVER_URL; construction fails when neither provides one.
func NewClient(opts ...Option) (*Client, error) {
	httpClient := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return fmt.Sprintf("%s %s", request.Method, request.URL.Path)
			}),
		)).
		SetHeader("Content-Type", "application/json")

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.BaseURL == "" {
		baseURL, ok := os.LookupEnv(ServerURLEnvVar)
		if !ok || baseURL == "" {
			return nil, fmt.Errorf("interview service url not found: set %s or use WithBaseURL", ServerURLEnvVar)
		}
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}

	return c, nil
}
