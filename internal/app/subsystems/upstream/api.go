package upstream

import (
	"context"
	"encoding/json"
)

// API is the subset of the upstream integration api the backend proxies.
type API interface {
	IssueLinkToken(ctx context.Context, req *LinkTokenRequest) (string, error)
	PreviewTransfer(ctx context.Context, req *PreviewRequest) (json.RawMessage, error)
	ExecuteTransfer(ctx context.Context, req *ExecuteRequest) (json.RawMessage, error)
	GetHoldings(ctx context.Context, req *HoldingsRequest) (json.RawMessage, error)
	GetNetworks(ctx context.Context) (json.RawMessage, error)
}

type LinkTokenRequest struct {
	UserId                   string           `json:"userId"`
	RestrictMultipleAccounts bool             `json:"restrictMultipleAccounts"`
	TransferOptions          *TransferOptions `json:"transferOptions,omitempty"`
}

// TransferOptions binds a link token to a transfer of a fixed amount to one
// of the listed destinations.
type TransferOptions struct {
	Amount      float64      `json:"amount"`
	ToAddresses []*ToAddress `json:"toAddresses"`
}

type ToAddress struct {
	NetworkId string  `json:"networkId"`
	Symbol    string  `json:"symbol"`
	Address   string  `json:"address"`
	Amount    float64 `json:"amount"`
}

type PreviewRequest struct {
	FromAuthToken string  `json:"fromAuthToken"`
	FromType      string  `json:"fromType"`
	ToType        string  `json:"toType"`
	ToAddress     string  `json:"toAddress"`
	Amount        float64 `json:"amount"`
	AddressTag    string  `json:"addressTag,omitempty"`
	Symbol        string  `json:"symbol"`
	NetworkId     string  `json:"networkId"`
}

type ExecuteRequest struct {
	FromAuthToken string `json:"fromAuthToken"`
	FromType      string `json:"fromType"`
	PreviewId     string `json:"previewId"`
	MfaCode       string `json:"mfaCode"`
}

type HoldingsRequest struct {
	AuthToken string `json:"authToken"`
	Type      string `json:"type"`
}
