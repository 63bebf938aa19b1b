package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntityType identifies the kind of record an audit entry is about.
type EntityType string

const (
	EntityTypeSubmission EntityType = "submission"
	EntityTypeUser       EntityType = "user"
)

// Entry is one immutable line of the audit trail. Entries are created as
// part of the transition that caused them and never updated or deleted.
type Entry struct {
	UUID       uuid.UUID
	EntityType EntityType
	EntityUUID uuid.UUID
	Action     string
	ActorUUID  uuid.UUID
	ActorRole  string
	Details    map[string]string
	CreatedAt  time.Time
}

// NewEntry stamps a fresh audit entry. The caller persists it atomically
// with the state change it records.
func NewEntry(
	entityType EntityType,
	entityUUID uuid.UUID,
	action string,
	actorUUID uuid.UUID,
	actorRole string,
	details map[string]string,
	now time.Time,
) Entry {
	return Entry{
		UUID:       uuid.New(),
		EntityType: entityType,
		EntityUUID: entityUUID,
		Action:     action,
		ActorUUID:  actorUUID,
		ActorRole:  actorRole,
		Details:    details,
		CreatedAt:  now,
	}
}

// Store is the read side of the audit trail. Writes happen through the
// submission store so the entry and the transition share one atomic write.
type Store interface {
	// ListByEntity returns all entries for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType EntityType, entityUUID uuid.UUID) ([]Entry, error)
	// ListByActor returns all entries recorded for one actor across
	// entities, oldest first.
	ListByActor(ctx context.Context, actorUUID uuid.UUID) ([]Entry, error)
}
