package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

type Config struct {
	ReceivingAddress string `flag:"receiving-address" desc:"destination of transfer bound link tokens (default depends on sandbox)" env:"RECEIVING_WALLET_ADDRESS"`
	CoinbaseAddress  string `flag:"coinbase-address" desc:"destination of rainbow to coinbase transfers" env:"COINBASE_WALLET_ADDRESS"`
	NetworkId        string `flag:"network-id" desc:"network transfers are sent over" default:"aa883b03-120d-477c-a588-37c2afd3ca71"`
	Symbol           string `flag:"symbol" desc:"asset transfers are denominated in" default:"USDC"`
}

// API ties the correlation stores to the upstream api. Every method is safe
// for concurrent use.
type API struct {
	config    *Config
	tokens    store.Store[correlation.TokenPayload]
	transfers store.Store[correlation.TransferPayload]
	upstream  upstream.API
}

func New(
	config *Config,
	tokens store.Store[correlation.TokenPayload],
	transfers store.Store[correlation.TransferPayload],
	upstream upstream.API,
) *API {
	return &API{
		config:    config,
		tokens:    tokens,
		transfers: transfers,
		upstream:  upstream,
	}
}

// Token flow

func (a *API) CreateAuthRequest(ctx context.Context) (*correlation.Record[correlation.TokenPayload], error) {
	r, err := a.tokens.Create(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("created auth request", "request_id", r.Id)
	return r, nil
}

// ResumeAuthRequest returns the record for id when it is known and creates a
// fresh record otherwise.
func (a *API) ResumeAuthRequest(ctx context.Context, id string) (*correlation.Record[correlation.TokenPayload], error) {
	if id != "" {
		r, err := a.tokens.Get(ctx, id)
		if err == nil {
			slog.Info("using existing auth request", "request_id", id)
			return r, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		slog.Info("auth request not found, creating a new one", "request_id", id)
	}

	return a.CreateAuthRequest(ctx)
}

func (a *API) StoreToken(ctx context.Context, id string, token correlation.TokenPayload) (*correlation.Record[correlation.TokenPayload], error) {
	r, err := a.tokens.Complete(ctx, id, correlation.Complete, token)
	if err != nil {
		return nil, err
	}

	slog.Info("stored token", "request_id", id, "broker_type", token.BrokerType)
	return r, nil
}

func (a *API) GetToken(ctx context.Context, id string) (*correlation.Record[correlation.TokenPayload], error) {
	return a.tokens.Get(ctx, id)
}

// Upstream

func (a *API) IssueLinkToken(ctx context.Context) (string, error) {
	return a.upstream.IssueLinkToken(ctx, &upstream.LinkTokenRequest{RestrictMultipleAccounts: true})
}

// AuthUrl issues a link token and decodes it into the url of the hosted
// authentication page.
func (a *API) AuthUrl(ctx context.Context) (string, error) {
	token, err := a.IssueLinkToken(ctx)
	if err != nil {
		return "", err
	}

	return DecodeLinkToken(token)
}

func (a *API) PreviewTransfer(ctx context.Context, req *upstream.PreviewRequest) (json.RawMessage, error) {
	if req.NetworkId == "" {
		req.NetworkId = a.config.NetworkId
	}
	return a.upstream.PreviewTransfer(ctx, req)
}

func (a *API) ExecuteTransfer(ctx context.Context, req *upstream.ExecuteRequest) (json.RawMessage, error) {
	return a.upstream.ExecuteTransfer(ctx, req)
}

func (a *API) GetHoldings(ctx context.Context, authToken string, accountType string) (json.RawMessage, error) {
	return a.upstream.GetHoldings(ctx, &upstream.HoldingsRequest{AuthToken: authToken, Type: accountType})
}

func (a *API) GetNetworks(ctx context.Context) (json.RawMessage, error) {
	return a.upstream.GetNetworks(ctx)
}

// Transfer flow

type Destination int

const (
	Receiving Destination = iota
	Coinbase
)

func (a *API) address(d Destination) string {
	switch d {
	case Coinbase:
		return a.config.CoinbaseAddress
	default:
		return a.config.ReceivingAddress
	}
}

// IssueTransferLinkToken issues a link token bound to a transfer of amount to
// the configured destination.
func (a *API) IssueTransferLinkToken(ctx context.Context, amount float64, d Destination) (string, error) {
	return a.upstream.IssueLinkToken(ctx, &upstream.LinkTokenRequest{
		RestrictMultipleAccounts: true,
		TransferOptions: &upstream.TransferOptions{
			Amount: amount,
			ToAddresses: []*upstream.ToAddress{{
				NetworkId: a.config.NetworkId,
				Symbol:    a.config.Symbol,
				Address:   a.address(d),
				Amount:    amount,
			}},
		},
	})
}

// RequestTransfer issues a transfer bound link token and records a pending
// transfer under id, a fresh id is generated when id is empty. An id that
// is already in use is rejected before the upstream api is called.
func (a *API) RequestTransfer(ctx context.Context, id string, amount float64, d Destination) (*correlation.Record[correlation.TransferPayload], string, error) {
	if id != "" {
		_, err := a.transfers.Get(ctx, id)
		if err == nil {
			return nil, "", fmt.Errorf("transfer %s: %w", id, store.ErrAlreadyExists)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, "", err
		}
	}

	token, err := a.IssueTransferLinkToken(ctx, amount, d)
	if err != nil {
		return nil, "", err
	}

	tags := map[string]string{
		"amount": strconv.FormatFloat(amount, 'f', -1, 64),
	}

	var r *correlation.Record[correlation.TransferPayload]
	if id == "" {
		r, err = a.createTransfer(ctx, tags)
	} else {
		r, err = a.transfers.CreateWithId(ctx, id, tags)
	}
	if err != nil {
		return nil, "", err
	}

	slog.Info("requested transfer", "request_id", r.Id, "amount", amount)
	return r, token, nil
}

func (a *API) createTransfer(ctx context.Context, tags map[string]string) (*correlation.Record[correlation.TransferPayload], error) {
	for {
		r, err := a.transfers.CreateWithId(ctx, uuid.New().String(), tags)
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		return r, err
	}
}

func (a *API) RecordTransferResult(ctx context.Context, id string, status correlation.Status, txHash string) (*correlation.Record[correlation.TransferPayload], error) {
	r, err := a.transfers.Complete(ctx, id, status, correlation.TransferPayload{TxHash: txHash})
	if err != nil {
		return nil, err
	}

	slog.Info("recorded transfer result", "request_id", id, "status", status, "tx_hash", txHash)
	return r, nil
}

func (a *API) TransferStatus(ctx context.Context, id string) (*correlation.Record[correlation.TransferPayload], error) {
	return a.transfers.Get(ctx, id)
}

// Helper functions

func DecodeLinkToken(token string) (string, error) {
	url, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("failed to decode link token: %w", err)
	}
	return string(url), nil
}
