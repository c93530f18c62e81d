package store

import (
	"context"
	"errors"
	"time"

	"github.com/meshbridge/meshbridge/internal/util"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrAlreadyCompleted = errors.New("record already completed")
	ErrInvalidStatus    = errors.New("record must be completed with a terminal status")
)

// Store owns correlation records. Callers only ever refer to a record by id;
// every returned record is a copy.
//
// A record is completed at most once, a second completion is rejected with
// ErrAlreadyCompleted and leaves the first payload in place.
type Store[T any] interface {
	Create(ctx context.Context) (*correlation.Record[T], error)
	CreateWithId(ctx context.Context, id string, tags map[string]string) (*correlation.Record[T], error)
	Get(ctx context.Context, id string) (*correlation.Record[T], error)
	Complete(ctx context.Context, id string, status correlation.Status, payload T) (*correlation.Record[T], error)
	Expire(ctx context.Context, now int64) (int, error)
}

// Clock returns the current time in unix milliseconds.
type Clock func() int64

func Now() int64 {
	return time.Now().UnixMilli()
}

// ExpiresOn computes the expiry of a record created at createdOn, zero means
// the record never expires.
func ExpiresOn(createdOn int64, ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return util.ClampAddInt64(createdOn, ttl.Milliseconds())
}

func CopyTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}

	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
