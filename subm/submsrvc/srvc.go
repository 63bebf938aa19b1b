package submsrvc

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/notif"
	"github.com/niri-portal/backend/subm"
)

// SubmStore persists submission snapshots. StoreSubmWithAudit must write
// the snapshot and the audit entry atomically and fail with
// submrepo.ErrVersionConflict on a stale snapshot.
type SubmStore interface {
	GetSubm(ctx context.Context, submUuid uuid.UUID) (subm.Submission, error)
	ListSubms(ctx context.Context) ([]subm.Submission, error)
	StoreSubmWithAudit(ctx context.Context, s subm.Submission, entry audit.Entry) error
}

// SubmSrvc wraps the workflow engine with persistence, audit queries and
// notifications. All writes to one submission are serialized through a
// per-submission mutex; the store's version condition catches writers
// racing from other processes.
type SubmSrvc struct {
	store      SubmStore
	auditStore audit.Store
	emitter    notif.Emitter

	lockMapMu sync.Mutex
	submLocks map[uuid.UUID]*sync.Mutex
}

func NewSubmSrvc(store SubmStore, auditStore audit.Store, emitter notif.Emitter) *SubmSrvc {
	return &SubmSrvc{
		store:      store,
		auditStore: auditStore,
		emitter:    emitter,
		submLocks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *SubmSrvc) submLock(submUuid uuid.UUID) *sync.Mutex {
	s.lockMapMu.Lock()
	defer s.lockMapMu.Unlock()

	lock, ok := s.submLocks[submUuid]
	if !ok {
		lock = &sync.Mutex{}
		s.submLocks[submUuid] = lock
	}
	return lock
}

// releaseLock drops the per-submission mutex once the submission is
// terminal, so the lock map does not grow with finished submissions. A
// straggler recreates the entry and then fails in the engine's guards.
func (s *SubmSrvc) releaseLock(submUuid uuid.UUID) {
	s.lockMapMu.Lock()
	defer s.lockMapMu.Unlock()
	delete(s.submLocks, submUuid)
}
