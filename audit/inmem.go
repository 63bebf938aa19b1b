package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemStore keeps audit entries in memory. Used in tests and local runs;
// the production twin is the DynamoDB store.
type InMemStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemStore() *InMemStore {
	return &InMemStore{}
}

// Append records an entry. Callers that need atomicity with a submission
// write go through the submission store, which calls this under its own
// lock.
func (s *InMemStore) Append(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemStore) ListByEntity(ctx context.Context, entityType EntityType, entityUUID uuid.UUID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0)
	for _, e := range s.entries {
		if e.EntityType == entityType && e.EntityUUID == entityUUID {
			out = append(out, e)
		}
	}
	sortOldestFirst(out)
	return out, nil
}

func (s *InMemStore) ListByActor(ctx context.Context, actorUUID uuid.UUID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0)
	for _, e := range s.entries {
		if e.ActorUUID == actorUUID {
			out = append(out, e)
		}
	}
	sortOldestFirst(out)
	return out, nil
}

func sortOldestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}
