package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anishathalye/porcupine"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store/test"
	"github.com/meshbridge/meshbridge/pkg/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	for _, tc := range test.TestCases {
		tc.Run(t, func(clock store.Clock, ttl time.Duration) store.Store[correlation.TokenPayload] {
			return New[correlation.TokenPayload](ttl, clock)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New[correlation.TokenPayload](0, nil)

	r, err := s.CreateWithId(ctx, "abc", map[string]string{"a": "1"})
	require.Nil(t, err)

	r.Tags["a"] = "2"
	r.Status = correlation.Complete

	got, err := s.Get(ctx, "abc")
	require.Nil(t, err)
	assert.Equal(t, "1", got.Tags["a"])
	assert.Equal(t, correlation.Pending, got.Status)
}

// linearizability

type op int

const (
	get op = iota
	complete
)

type input struct {
	op    op
	id    string
	token string
}

type output struct {
	status correlation.Status
	token  string
	err    error
}

type state struct {
	status correlation.Status
	token  string
}

var model = porcupine.Model{
	Partition: func(history []porcupine.Operation) [][]porcupine.Operation {
		partitions := map[string][]porcupine.Operation{}
		for _, o := range history {
			id := o.Input.(*input).id
			partitions[id] = append(partitions[id], o)
		}

		var out [][]porcupine.Operation
		for _, p := range partitions {
			out = append(out, p)
		}
		return out
	},
	Init: func() interface{} {
		return &state{status: correlation.Pending}
	},
	Step: func(s, i, o interface{}) (bool, interface{}) {
		st := s.(*state)
		in := i.(*input)
		out := o.(*output)

		switch in.op {
		case get:
			return out.err == nil && out.status == st.status && out.token == st.token, st
		case complete:
			if st.status.Terminal() {
				return errors.Is(out.err, store.ErrAlreadyCompleted), st
			}
			if out.err != nil || out.token != in.token {
				return false, st
			}
			return true, &state{status: correlation.Complete, token: in.token}
		default:
			panic("invalid op")
		}
	},
	DescribeOperation: func(i, o interface{}) string {
		in := i.(*input)
		out := o.(*output)
		return fmt.Sprintf("%d(%s, %s) -> %v, %s, %v", in.op, in.id, in.token, out.status, out.token, out.err)
	},
}

func TestMemoryStoreLinearizable(t *testing.T) {
	ctx := context.Background()
	s := New[correlation.TokenPayload](0, nil)

	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		_, err := s.CreateWithId(ctx, id, nil)
		require.Nil(t, err)
	}

	start := time.Now()
	since := func() int64 { return time.Since(start).Nanoseconds() }

	var mu sync.Mutex
	var ops []porcupine.Operation

	var wg sync.WaitGroup
	for c := 0; c < 8; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()

			for n := 0; n < 50; n++ {
				in := &input{op: op(n % 2), id: ids[(c+n)%len(ids)], token: fmt.Sprintf("%d-%d", c, n)}
				out := &output{}

				call := since()
				var r *correlation.Record[correlation.TokenPayload]
				var err error
				if in.op == get {
					r, err = s.Get(ctx, in.id)
				} else {
					r, err = s.Complete(ctx, in.id, correlation.Complete, correlation.TokenPayload{AccessToken: in.token})
				}
				ret := since()

				out.err = err
				if r != nil {
					out.status = r.Status
					out.token = r.Payload.AccessToken
				}

				mu.Lock()
				ops = append(ops, porcupine.Operation{
					ClientId: c,
					Input:    in,
					Call:     call,
					Output:   out,
					Return:   ret,
				})
				mu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	assert.True(t, porcupine.CheckOperations(model, ops))
}
