package senderconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const maxPayloadSize = 64 << 10

// payload is the body returned by the configuration service.
type payload struct {
	FromName string `json:"fromName" yaml:"fromName"`
}

// HTTPSource reads the sender configuration from a remote endpoint that
// authenticates callers with a bearer token.
type HTTPSource struct {
	url    string
	client *http.Client
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*httpSourceOptions)

type httpSourceOptions struct {
	client *http.Client
}

// WithHTTPClient sets the base client. Its transport carries the bearer token.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(o *httpSourceOptions) {
		o.client = c
	}
}

// NewHTTPSource returns a Source for url. An empty token sends no
// Authorization header.
func NewHTTPSource(url, token string, opts ...HTTPSourceOption) *HTTPSource {
	o := &httpSourceOptions{client: http.DefaultClient}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
		client.Timeout = o.client.Timeout
	}

	return &HTTPSource{url: url, client: client}
}

// FetchFromName performs one GET and decodes a JSON or YAML payload.
func (s *HTTPSource) FetchFromName(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status=%d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var p payload
	if isYAML(resp.Header.Get("Content-Type")) {
		err = yaml.Unmarshal(body, &p)
	} else {
		err = json.Unmarshal(body, &p)
	}
	if err != nil {
		return "", errors.Join(ErrMalformedPayload, err)
	}
	return p.FromName, nil
}

func isYAML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasSuffix(mt, "yaml") || strings.HasSuffix(mt, "yml")
}
