package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meshbridge/meshbridge/internal/metrics"
)

const (
	SandboxUrl    = "https://sandbox-integration-api.meshconnect.com"
	ProductionUrl = "https://integration-api.meshconnect.com"

	// upper bound of an upstream error body carried into an error message
	maxMessageLen = 512
)

type Config struct {
	Sandbox       bool          `flag:"sandbox" desc:"use the sandbox environment" default:"false" env:"SANDBOX"`
	Url           string        `flag:"url" desc:"upstream base url (default depends on sandbox)"`
	ClientId      string        `flag:"client-id" desc:"upstream client id" env:"MESH_CLIENT_ID"`
	SandboxSecret string        `flag:"sandbox-secret" desc:"upstream client secret used in the sandbox" env:"MESH_API_SECRET"`
	ProdSecret    string        `flag:"prod-secret" desc:"upstream client secret used in production" env:"MESH_PROD_API_SECRET"`
	UserId        string        `flag:"user-id" desc:"user id link tokens are issued for" default:"sandbox_user"`
	Timeout       time.Duration `flag:"timeout" desc:"upstream request timeout" default:"10s"`
}

func (c *Config) BaseUrl() string {
	if c.Url != "" {
		return strings.TrimRight(c.Url, "/")
	}
	if c.Sandbox {
		return SandboxUrl
	}
	return ProductionUrl
}

func (c *Config) Secret() string {
	if c.Sandbox {
		return c.SandboxSecret
	}
	return c.ProdSecret
}

// Error is returned for every failed upstream call, a zero StatusCode means
// no response was received.
type Error struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
}

type Client struct {
	config  *Config
	client  *http.Client
	metrics *metrics.Metrics
}

func New(config *Config, metrics *metrics.Metrics) *Client {
	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		metrics: metrics,
	}
}

func (c *Client) String() string {
	return "upstream"
}

func (c *Client) IssueLinkToken(ctx context.Context, req *LinkTokenRequest) (string, error) {
	r := *req
	if r.UserId == "" {
		r.UserId = c.config.UserId
	}

	body, err := c.call(ctx, "linktoken", http.MethodPost, "/api/v1/linktoken", &r)
	if err != nil {
		return "", err
	}

	var res struct {
		Content struct {
			LinkToken string `json:"linkToken"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &res); err != nil || res.Content.LinkToken == "" {
		return "", &Error{Operation: "linktoken", StatusCode: http.StatusOK, Message: "response is missing content.linkToken"}
	}

	return res.Content.LinkToken, nil
}

func (c *Client) PreviewTransfer(ctx context.Context, req *PreviewRequest) (json.RawMessage, error) {
	return c.call(ctx, "transfer_preview", http.MethodPost, "/api/v1/transfers/managed/preview", req)
}

func (c *Client) ExecuteTransfer(ctx context.Context, req *ExecuteRequest) (json.RawMessage, error) {
	return c.call(ctx, "transfer_execute", http.MethodPost, "/api/v1/transfers/managed/execute", req)
}

func (c *Client) GetHoldings(ctx context.Context, req *HoldingsRequest) (json.RawMessage, error) {
	return c.call(ctx, "holdings", http.MethodPost, "/api/v1/holdings/get", req)
}

func (c *Client) GetNetworks(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "networks", http.MethodGet, "/api/v1/transfers/managed/networks", nil)
}

// call sends one request to the upstream api and returns the response body
// unmodified. Transport failures and non 2xx responses are reported as *Error.
func (c *Client) call(ctx context.Context, operation string, method string, path string, payload any) (json.RawMessage, error) {
	start := time.Now()
	status := "error"

	defer func() {
		c.metrics.UpstreamTotal.WithLabelValues(operation, status).Inc()
		c.metrics.UpstreamDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Operation: operation, Message: err.Error()}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseUrl()+path, body)
	if err != nil {
		return nil, &Error{Operation: operation, Message: err.Error()}
	}

	req.Header.Set("X-Client-Id", c.config.ClientId)
	req.Header.Set("X-Client-Secret", c.config.Secret())
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		slog.Error("upstream request failed", "operation", operation, "error", err)
		return nil, &Error{Operation: operation, Message: err.Error()}
	}
	defer res.Body.Close()

	status = strconv.Itoa(res.StatusCode)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Operation: operation, StatusCode: res.StatusCode, Message: err.Error()}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := &Error{Operation: operation, StatusCode: res.StatusCode, Message: message(data, res.Status)}
		slog.Error("upstream request failed", "operation", operation, "status", res.StatusCode, "error", err)
		return nil, err
	}

	if !json.Valid(data) {
		return nil, &Error{Operation: operation, StatusCode: res.StatusCode, Message: "response is not valid json"}
	}

	slog.Debug("upstream request", "operation", operation, "status", res.StatusCode, "duration", time.Since(start))
	return json.RawMessage(data), nil
}

// message prefers the message field of a json error body, then the raw
// body, then the http status line.
func message(data []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}

	if s := strings.TrimSpace(string(data)); s != "" {
		if len(s) > maxMessageLen {
			// cut on a rune boundary
			n := maxMessageLen
			for n > 0 && !utf8.RuneStart(s[n]) {
				n--
			}
			s = s[:n]
		}
		return s
	}

	return fallback
}
