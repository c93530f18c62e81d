package test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/pkg/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory creates an empty store of token records.
type Factory func(clock store.Clock, ttl time.Duration) store.Store[correlation.TokenPayload]

// Clock is a manually advanced clock starting at a fixed instant.
type Clock struct {
	now atomic.Int64
}

func NewClock() *Clock {
	c := &Clock{}
	c.now.Store(1704067200000)
	return c
}

func (c *Clock) Now() int64 {
	return c.now.Load()
}

func (c *Clock) Advance(d time.Duration) {
	c.now.Add(d.Milliseconds())
}

type testCase struct {
	name string
	ttl  time.Duration
	run  func(t *testing.T, s store.Store[correlation.TokenPayload], clock *Clock)
}

func (c *testCase) Run(t *testing.T, factory Factory) {
	t.Run(c.name, func(t *testing.T) {
		clock := NewClock()
		c.run(t, factory(clock.Now, c.ttl), clock)
	})
}

var token = correlation.TokenPayload{AccessToken: "tok", BrokerType: "coinbase"}

var TestCases = []*testCase{
	{
		name: "CreateIsPending",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], clock *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)
			assert.NotEmpty(t, r.Id)
			assert.Equal(t, correlation.Pending, r.Status)
			assert.Equal(t, clock.Now(), r.CreatedOn)
			assert.Nil(t, r.CompletedOn)
			assert.Equal(t, int64(0), r.ExpiresOn)

			got, err := s.Get(ctx, r.Id)
			require.Nil(t, err)
			assert.Equal(t, r, got)
		},
	},
	{
		name: "CreateUniqueIds",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ids := map[string]bool{}
			for i := 0; i < 100; i++ {
				r, err := s.Create(context.Background())
				require.Nil(t, err)
				assert.False(t, ids[r.Id])
				ids[r.Id] = true
			}
		},
	},
	{
		name: "GetUnknown",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			_, err := s.Get(context.Background(), "does-not-exist")
			assert.ErrorIs(t, err, store.ErrNotFound)
		},
	},
	{
		name: "CompleteThenGet",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], clock *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)

			clock.Advance(time.Second)

			completed, err := s.Complete(ctx, r.Id, correlation.Complete, token)
			require.Nil(t, err)
			assert.Equal(t, correlation.Complete, completed.Status)
			assert.Equal(t, token, completed.Payload)
			require.NotNil(t, completed.CompletedOn)
			assert.Equal(t, clock.Now(), *completed.CompletedOn)

			got, err := s.Get(ctx, r.Id)
			require.Nil(t, err)
			assert.Equal(t, completed, got)
		},
	},
	{
		name: "CompleteFailed",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)

			_, err = s.Complete(ctx, r.Id, correlation.Failed, correlation.TokenPayload{})
			require.Nil(t, err)

			got, err := s.Get(ctx, r.Id)
			require.Nil(t, err)
			assert.Equal(t, correlation.Failed, got.Status)
		},
	},
	{
		name: "CompleteTwiceKeepsFirstPayload",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)

			_, err = s.Complete(ctx, r.Id, correlation.Complete, token)
			require.Nil(t, err)

			_, err = s.Complete(ctx, r.Id, correlation.Complete, correlation.TokenPayload{AccessToken: "other"})
			assert.ErrorIs(t, err, store.ErrAlreadyCompleted)

			_, err = s.Complete(ctx, r.Id, correlation.Failed, correlation.TokenPayload{})
			assert.ErrorIs(t, err, store.ErrAlreadyCompleted)

			got, err := s.Get(ctx, r.Id)
			require.Nil(t, err)
			assert.Equal(t, correlation.Complete, got.Status)
			assert.Equal(t, token, got.Payload)
		},
	},
	{
		name: "CompleteUnknown",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			_, err := s.Complete(context.Background(), "does-not-exist", correlation.Complete, token)
			assert.ErrorIs(t, err, store.ErrNotFound)
		},
	},
	{
		name: "CompletePendingIsInvalid",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)

			_, err = s.Complete(ctx, r.Id, correlation.Pending, token)
			assert.ErrorIs(t, err, store.ErrInvalidStatus)

			got, err := s.Get(ctx, r.Id)
			require.Nil(t, err)
			assert.Equal(t, correlation.Pending, got.Status)
		},
	},
	{
		name: "CreateWithId",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			r, err := s.CreateWithId(ctx, "abc", map[string]string{"origin": "init_auth"})
			require.Nil(t, err)
			assert.Equal(t, "abc", r.Id)
			assert.Equal(t, map[string]string{"origin": "init_auth"}, r.Tags)

			_, err = s.CreateWithId(ctx, "abc", nil)
			assert.ErrorIs(t, err, store.ErrAlreadyExists)

			got, err := s.Get(ctx, "abc")
			require.Nil(t, err)
			assert.Equal(t, map[string]string{"origin": "init_auth"}, got.Tags)
		},
	},
	{
		name: "RecordsAreIndependent",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			a, err := s.Create(ctx)
			require.Nil(t, err)
			b, err := s.Create(ctx)
			require.Nil(t, err)

			_, err = s.Complete(ctx, a.Id, correlation.Complete, token)
			require.Nil(t, err)

			got, err := s.Get(ctx, b.Id)
			require.Nil(t, err)
			assert.Equal(t, correlation.Pending, got.Status)
		},
	},
	{
		name: "Expiry",
		ttl:  time.Minute,
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], clock *Clock) {
			ctx := context.Background()

			r, err := s.Create(ctx)
			require.Nil(t, err)
			assert.Equal(t, clock.Now()+time.Minute.Milliseconds(), r.ExpiresOn)

			clock.Advance(59 * time.Second)
			_, err = s.Get(ctx, r.Id)
			require.Nil(t, err)

			n, err := s.Expire(ctx, clock.Now())
			require.Nil(t, err)
			assert.Equal(t, 0, n)

			clock.Advance(time.Second)
			_, err = s.Get(ctx, r.Id)
			assert.ErrorIs(t, err, store.ErrNotFound)

			_, err = s.Complete(ctx, r.Id, correlation.Complete, token)
			assert.ErrorIs(t, err, store.ErrNotFound)

			n, err = s.Expire(ctx, clock.Now())
			require.Nil(t, err)
			assert.Equal(t, 1, n)
		},
	},
	{
		name: "ExpiredIdCanBeReused",
		ttl:  time.Minute,
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], clock *Clock) {
			ctx := context.Background()

			_, err := s.CreateWithId(ctx, "abc", nil)
			require.Nil(t, err)

			clock.Advance(time.Minute)

			r, err := s.CreateWithId(ctx, "abc", nil)
			require.Nil(t, err)
			assert.Equal(t, correlation.Pending, r.Status)
		},
	},
	{
		name: "AuthRoundTrip",
		run: func(t *testing.T, s store.Store[correlation.TokenPayload], _ *Clock) {
			ctx := context.Background()

			_, err := s.CreateWithId(ctx, "abc", nil)
			require.Nil(t, err)

			got, err := s.Get(ctx, "abc")
			require.Nil(t, err)
			assert.Equal(t, correlation.Pending, got.Status)

			_, err = s.Complete(ctx, "abc", correlation.Complete, correlation.TokenPayload{AccessToken: "T1", BrokerType: "coinbase"})
			require.Nil(t, err)

			got, err = s.Get(ctx, "abc")
			require.Nil(t, err)
			assert.Equal(t, correlation.Complete, got.Status)
			assert.Equal(t, "T1", got.Payload.AccessToken)
			assert.Equal(t, "coinbase", got.Payload.BrokerType)
		},
	},
}
