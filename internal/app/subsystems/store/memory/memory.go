package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

// MemoryStore keeps records in a map guarded by a single lock, every
// operation is therefore linearizable.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]*correlation.Record[T]
	ttl     time.Duration
	clock   store.Clock
}

func New[T any](ttl time.Duration, clock store.Clock) *MemoryStore[T] {
	if clock == nil {
		clock = store.Now
	}

	return &MemoryStore[T]{
		records: map[string]*correlation.Record[T]{},
		ttl:     ttl,
		clock:   clock,
	}
}

func (s *MemoryStore[T]) String() string {
	return "store:memory"
}

func (s *MemoryStore[T]) Create(_ context.Context) (*correlation.Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	for s.exists(id) {
		id = uuid.New().String()
	}

	return s.insert(id, nil), nil
}

func (s *MemoryStore[T]) CreateWithId(_ context.Context, id string, tags map[string]string) (*correlation.Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(id) {
		return nil, store.ErrAlreadyExists
	}

	return s.insert(id, tags), nil
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (*correlation.Record[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok || r.Expired(s.clock()) {
		return nil, store.ErrNotFound
	}

	return clone(r), nil
}

func (s *MemoryStore[T]) Complete(_ context.Context, id string, status correlation.Status, payload T) (*correlation.Record[T], error) {
	if !status.Terminal() {
		return nil, store.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()

	r, ok := s.records[id]
	if !ok || r.Expired(now) {
		return nil, store.ErrNotFound
	}
	if r.Status.Terminal() {
		return nil, store.ErrAlreadyCompleted
	}

	r.Status = status
	r.Payload = payload
	r.CompletedOn = &now

	return clone(r), nil
}

func (s *MemoryStore[T]) Expire(_ context.Context, now int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, r := range s.records {
		if r.Expired(now) {
			delete(s.records, id)
			n++
		}
	}

	return n, nil
}

// must hold the write lock
func (s *MemoryStore[T]) insert(id string, tags map[string]string) *correlation.Record[T] {
	now := s.clock()

	r := &correlation.Record[T]{
		Id:        id,
		Status:    correlation.Pending,
		Tags:      store.CopyTags(tags),
		CreatedOn: now,
		ExpiresOn: store.ExpiresOn(now, s.ttl),
	}

	s.records[id] = r
	return clone(r)
}

// an expired record that has not been swept yet does not count
func (s *MemoryStore[T]) exists(id string) bool {
	r, ok := s.records[id]
	return ok && !r.Expired(s.clock())
}

func clone[T any](r *correlation.Record[T]) *correlation.Record[T] {
	c := *r
	c.Tags = store.CopyTags(r.Tags)
	if r.CompletedOn != nil {
		completedOn := *r.CompletedOn
		c.CompletedOn = &completedOn
	}
	return &c
}
