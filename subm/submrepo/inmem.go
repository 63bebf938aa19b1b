package submrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/subm"
)

// InMemRepo keeps submissions in memory. The twin of the DynamoDB repo for
// tests and local runs; the version check mirrors the conditional write.
type InMemRepo struct {
	mu         sync.RWMutex
	subms      map[uuid.UUID]subm.Submission
	auditStore *audit.InMemStore
}

func NewInMemRepo(auditStore *audit.InMemStore) *InMemRepo {
	return &InMemRepo{
		subms:      make(map[uuid.UUID]subm.Submission),
		auditStore: auditStore,
	}
}

func (r *InMemRepo) GetSubm(ctx context.Context, submUuid uuid.UUID) (subm.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subms[submUuid]
	if !ok {
		return subm.Submission{}, ErrNotFound
	}
	return s, nil
}

func (r *InMemRepo) ListSubms(ctx context.Context) ([]subm.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subm.Submission, 0, len(r.subms))
	for _, s := range r.subms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// StoreSubmWithAudit persists the new snapshot and its audit entry
// together. Fails with ErrVersionConflict unless the stored version is
// exactly one behind the snapshot's.
func (r *InMemRepo) StoreSubmWithAudit(ctx context.Context, s subm.Submission, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.subms[s.UUID]
	if exists {
		if stored.Version != s.Version-1 {
			return ErrVersionConflict
		}
	} else if s.Version != 1 {
		return ErrVersionConflict
	}

	r.subms[s.UUID] = s
	return r.auditStore.Append(ctx, entry)
}
