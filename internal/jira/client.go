package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/idilsaglam/jiraglance/internal/model"
)

// Format is the body format a caller expects back.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
)

func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

func (f Format) accept() string {
	if f == FormatXML {
		return "application/atom+xml, application/xml;q=0.9, */*;q=0.1"
	}
	return "application/json"
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// Auth decorates every request. Nil means anonymous.
	Auth Authorizer

	// RateLimit paces requests per second. Zero disables pacing.
	RateLimit float64

	// RateBurst is the limiter burst size (default: 1).
	RateBurst int

	// UserAgent string (default: "jiraglance/1.0").
	UserAgent string

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper

	Logger *slog.Logger
}

// DefaultClientConfig returns a client config with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Auth:      NoAuth{},
		RateBurst: 1,
		UserAgent: "jiraglance/1.0",
	}
}

// Client performs single GET exchanges against JIRA. It never retries and
// sets no timeout of its own; the caller's context bounds each request.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a client with the given configuration.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.Auth == nil {
		config.Auth = NoAuth{}
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 1
	}
	if config.UserAgent == "" {
		config.UserAgent = "jiraglance/1.0"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Transport: config.Transport},
		log:        logger,
	}
	if config.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst)
	}
	return c
}

// Response is a classified, successful exchange.
type Response struct {
	StatusCode int
	Format     Format
	Body       []byte
}

// Decode unmarshals the body in the response's format.
func (r *Response) Decode(target any) error {
	var err error
	if r.Format == FormatXML {
		err = xml.Unmarshal(r.Body, target)
	} else {
		err = json.Unmarshal(r.Body, target)
	}
	if err != nil {
		return &Error{Kind: KindAPI, Message: fmt.Sprintf("malformed %s response: %v", r.Format, err), Err: err}
	}
	return nil
}

// apiErrors is the error envelope JIRA returns on failed REST calls.
type apiErrors struct {
	ErrorMessages []string `json:"errorMessages"`
}

// Request issues a GET for url and classifies the outcome:
//
//   - no response at all: KindNetwork
//   - HTTP 401: KindAuth, whatever the body says
//   - a JSON body with a non-empty errorMessages list: KindAPI with the
//     first message, whatever the status
//   - another non-2xx status, or a body that does not parse as format: KindAPI
//
// Otherwise the body is returned for decoding.
func (c *Client) Request(ctx context.Context, url string, format Format) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NetworkError(fmt.Errorf("rate limiter: %w", err))
		}
	}

	// Queries are spliced unescaped; a raw space would break the request line.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.ReplaceAll(url, " ", "%20"), nil)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "invalid request URL: " + url, Err: err}
	}
	req.Header.Set("Accept", format.accept())
	req.Header.Set("User-Agent", c.config.UserAgent)
	c.config.Auth.Apply(req)

	start := time.Now()
	c.log.Debug("jira request", "url", url, "format", format)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("jira transport failure", "url", url, "error", err)
		return nil, NetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NetworkError(fmt.Errorf("read body: %w", err))
	}
	c.log.Debug("jira response",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, AuthError()
	}
	if msg, ok := firstErrorMessage(body); ok {
		return nil, APIError(msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, APIError(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
	if err := wellFormed(body, format); err != nil {
		return nil, &Error{Kind: KindAPI, Message: fmt.Sprintf("malformed %s response: %v", format, err), Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Format: format, Body: body}, nil
}

// firstErrorMessage looks for JIRA's error envelope in a JSON object body.
func firstErrorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var env apiErrors
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return "", false
	}
	if len(env.ErrorMessages) == 0 {
		return "", false
	}
	return env.ErrorMessages[0], true
}

func wellFormed(body []byte, format Format) error {
	if format == FormatJSON {
		if !json.Valid(body) {
			return errors.New("invalid JSON")
		}
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(body))
	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return errors.New("empty document")
	}
	return nil
}

// Search runs a JQL search URL built by BuildQuery.
func (c *Client) Search(ctx context.Context, url string) (*model.SearchResult, error) {
	resp, err := c.Request(ctx, url, FormatJSON)
	if err != nil {
		return nil, err
	}
	var out model.SearchResult
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activity fetches and parses an activity stream feed.
func (c *Client) Activity(ctx context.Context, url string) (*model.Feed, error) {
	resp, err := c.Request(ctx, url, FormatXML)
	if err != nil {
		return nil, err
	}
	var out model.Feed
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Project fetches a project; the popup uses it as a login probe.
func (c *Client) Project(ctx context.Context, url string) (*model.Project, error) {
	resp, err := c.Request(ctx, url, FormatJSON)
	if err != nil {
		return nil, err
	}
	var out model.Project
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
