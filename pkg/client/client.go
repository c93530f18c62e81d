package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meshbridge/meshbridge/internal/util"
	"github.com/oapi-codegen/runtime"
)

// Client talks to a running meshbridge server.
type Client interface {
	Setup(server string) error
	Server() string

	// token flow
	RequestId(ctx context.Context) (string, error)
	StoreToken(ctx context.Context, id string, token *StoreTokenBody) error
	GetToken(ctx context.Context, id string) (*Token, error)
	AuthUrl(id string) string

	// upstream
	LinkToken(ctx context.Context) (string, error)
	PreviewTransfer(ctx context.Context, params *PreviewTransferParams) (json.RawMessage, error)
	ExecuteTransfer(ctx context.Context, body *ExecuteTransferBody) (json.RawMessage, error)
	GetHoldings(ctx context.Context, authToken string, fromType string) (json.RawMessage, error)
	GetNetworks(ctx context.Context) (json.RawMessage, error)

	// transfer flow
	RequestTransfer(ctx context.Context, body *RequestTransferBody) (*TransferRequest, error)
	TransferResult(ctx context.Context, body *TransferResultBody) error
	TransferStatus(ctx context.Context, id string) (*TransferStatus, error)
}

type StoreTokenBody struct {
	AccessToken string `json:"access_token"`
	BrokerType  string `json:"broker_type"`
}

type Token struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	BrokerType  string `json:"broker_type,omitempty"`
}

type PreviewTransferParams struct {
	AuthToken  string
	FromType   string
	ToType     string
	ToAddress  string
	Amount     float64
	Symbol     string
	AddressTag string
	NetworkId  string
}

type ExecuteTransferBody struct {
	AuthToken string `json:"auth_token"`
	FromType  string `json:"from_type"`
	PreviewId string `json:"preview_id"`
	MfaCode   string `json:"mfa_code"`
}

type RequestTransferBody struct {
	Amount    float64 `json:"amount"`
	RequestId string  `json:"request_id,omitempty"`
}

type TransferRequest struct {
	RequestId string `json:"request_id"`
	LinkToken string `json:"link_token"`
}

type TransferResultBody struct {
	RequestId string `json:"request_id"`
	Status    string `json:"status"`
	TxHash    string `json:"tx_hash,omitempty"`
}

type TransferStatus struct {
	RequestId string  `json:"request_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	TxHash    *string `json:"tx_hash"`
}

// ResponseError is returned when the server answers with a non 2xx status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("server responded with %d: %s", e.StatusCode, e.Message)
}

// Client

type client struct {
	server string
	http   *http.Client
}

func New() Client {
	return &client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) Setup(server string) error {
	u, err := url.Parse(server)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url: %s", server)
	}

	c.server = strings.TrimRight(server, "/")
	return nil
}

func (c *client) Server() string {
	return c.server
}

func (c *client) RequestId(ctx context.Context) (string, error) {
	var res struct {
		RequestId string `json:"request_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/request_id", nil, &res); err != nil {
		return "", err
	}
	return res.RequestId, nil
}

func (c *client) StoreToken(ctx context.Context, id string, token *StoreTokenBody) error {
	path, err := c.path("/api/store_token/", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, token, nil)
}

func (c *client) GetToken(ctx context.Context, id string) (*Token, error) {
	path, err := c.path("/api/get_token/", id)
	if err != nil {
		return nil, err
	}

	var res *Token
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) AuthUrl(id string) string {
	path, err := c.path("/init_auth/", id)
	util.Assert(err == nil, "id must be stylable")
	return c.server + path
}

func (c *client) LinkToken(ctx context.Context) (string, error) {
	var res struct {
		LinkToken string `json:"link_token"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/get_linktoken", nil, &res); err != nil {
		return "", err
	}
	return res.LinkToken, nil
}

func (c *client) PreviewTransfer(ctx context.Context, params *PreviewTransferParams) (json.RawMessage, error) {
	query, err := c.query(
		"auth_token", params.AuthToken,
		"from_type", params.FromType,
		"to_type", params.ToType,
		"to_address", params.ToAddress,
		"amount", params.Amount,
		"symbol", params.Symbol,
		"address_tag", params.AddressTag,
		"network_id", params.NetworkId,
	)
	if err != nil {
		return nil, err
	}

	var res json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/transfer_preview?"+query, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) ExecuteTransfer(ctx context.Context, body *ExecuteTransferBody) (json.RawMessage, error) {
	var res json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/execute_transfer", body, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) GetHoldings(ctx context.Context, authToken string, fromType string) (json.RawMessage, error) {
	query, err := c.query("auth_token", authToken, "from_type", fromType)
	if err != nil {
		return nil, err
	}

	var res json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/get_holdings?"+query, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) GetNetworks(ctx context.Context) (json.RawMessage, error) {
	var res json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/get_networks", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) RequestTransfer(ctx context.Context, body *RequestTransferBody) (*TransferRequest, error) {
	var res *TransferRequest
	if err := c.do(ctx, http.MethodPost, "/api/transfer_request", body, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) TransferResult(ctx context.Context, body *TransferResultBody) error {
	return c.do(ctx, http.MethodPost, "/api/transfer_result", body, nil)
}

func (c *client) TransferStatus(ctx context.Context, id string) (*TransferStatus, error) {
	path, err := c.path("/api/transfer_status/", id)
	if err != nil {
		return nil, err
	}

	var res *TransferStatus
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Helper functions

func (c *client) path(prefix string, id string) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", err
	}
	return prefix + param, nil
}

// query styles alternating name, value pairs as form parameters, empty
// strings are omitted.
func (c *client) query(kv ...any) (string, error) {
	var parts []string
	for i := 0; i+1 < len(kv); i += 2 {
		if s, ok := kv[i+1].(string); ok && s == "" {
			continue
		}

		part, err := runtime.StyleParamWithLocation("form", true, kv[i].(string), runtime.ParamLocationQuery, kv[i+1])
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "&"), nil
}

func (c *client) do(ctx context.Context, method string, path string, body any, out any) error {
	util.Assert(c.server != "", "client must be setup")

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &ResponseError{StatusCode: res.StatusCode, Message: message(data)}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// message extracts the most specific message of an error envelope.
func message(data []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Details []struct {
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return strings.TrimSpace(string(data))
	}

	var messages []string
	for _, d := range envelope.Error.Details {
		if d.Message != "" {
			messages = append(messages, d.Message)
		}
	}
	if len(messages) > 0 {
		return strings.Join(messages, " ")
	}
	return envelope.Error.Message
}
