package correlation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record links an asynchronous external callback to the callers that poll
// for its outcome. The payload is only meaningful once the record has left
// the pending state.
type Record[T any] struct {
	Id          string            `json:"id"`
	Status      Status            `json:"status"`
	Payload     T                 `json:"payload,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	CreatedOn   int64             `json:"createdOn"`
	CompletedOn *int64            `json:"completedOn,omitempty"`
	ExpiresOn   int64             `json:"expiresOn,omitempty"`
}

func (r *Record[T]) String() string {
	return fmt.Sprintf(
		"Record(id=%s, status=%s, tags=%s, createdOn=%d, expiresOn=%d)",
		r.Id,
		r.Status,
		r.Tags,
		r.CreatedOn,
		r.ExpiresOn,
	)
}

func (r *Record[T]) Expired(now int64) bool {
	return r.ExpiresOn > 0 && r.ExpiresOn <= now
}

type Status int

const (
	Pending  Status = 1 << iota // 1
	Complete                    // 2
	Failed                      // 4
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		panic("invalid status")
	}
}

func (s Status) Terminal() bool {
	return s.In(Complete | Failed)
}

func (s Status) In(mask Status) bool {
	return s&mask != 0
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var status string
	if err := json.Unmarshal(data, &status); err != nil {
		return err
	}

	parsed, err := ParseStatus(status)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// ParseStatus accepts the wire names of a status. The browser reports a
// finished transfer as "success", which is an alias for complete.
func ParseStatus(status string) (Status, error) {
	switch strings.ToLower(status) {
	case "pending":
		return Pending, nil
	case "complete", "success":
		return Complete, nil
	case "failed":
		return Failed, nil
	default:
		return 0, fmt.Errorf("invalid status '%s'", status)
	}
}

// Payloads

type TokenPayload struct {
	AccessToken string `json:"access_token"`
	BrokerType  string `json:"broker_type"`
}

type TransferPayload struct {
	TxHash string `json:"tx_hash,omitempty"`
}
