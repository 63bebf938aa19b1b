package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// EntryRow is the DynamoDB shape of an audit entry. The partition key
// groups all entries of one entity; the range key keeps them in
// chronological order so entity queries come back oldest-first for free.
type EntryRow struct {
	EntityKey  string            `dynamo:"entity_key,hash"` // "<entity_type>#<entity_uuid>"
	SortKey    string            `dynamo:"sort_key,range"`  // "<rfc3339nano created_at>#<entry_uuid>"
	Uuid       string            `dynamo:"uuid"`
	EntityType string            `dynamo:"entity_type"`
	EntityUuid string            `dynamo:"entity_uuid"`
	Action     string            `dynamo:"action"`
	ActorUuid  string            `dynamo:"actor_uuid"`
	ActorRole  string            `dynamo:"actor_role"`
	Details    map[string]string `dynamo:"details"`
	CreatedAt  time.Time         `dynamo:"created_at"`
}

// DdbStore reads the audit trail from DynamoDB. Writes go through the
// submission store's transaction; this type only exposes the put item so
// the transaction can include it.
type DdbStore struct {
	ddbClient *dynamodb.Client
	tableName string
	table     *dynamo.Table
}

func NewDdbStore(ddbClient *dynamodb.Client, tableName string) *DdbStore {
	store := &DdbStore{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddbClient)
	table := db.Table(tableName)
	store.table = &table

	return store
}

// Table exposes the underlying table for transactional writes.
func (s *DdbStore) Table() *dynamo.Table {
	return s.table
}

func RowFromEntry(e Entry) EntryRow {
	return EntryRow{
		EntityKey:  entityKey(e.EntityType, e.EntityUUID),
		SortKey:    fmt.Sprintf("%s#%s", e.CreatedAt.UTC().Format(time.RFC3339Nano), e.UUID),
		Uuid:       e.UUID.String(),
		EntityType: string(e.EntityType),
		EntityUuid: e.EntityUUID.String(),
		Action:     e.Action,
		ActorUuid:  e.ActorUUID.String(),
		ActorRole:  e.ActorRole,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

func (s *DdbStore) ListByEntity(ctx context.Context, entityType EntityType, entityUUID uuid.UUID) ([]Entry, error) {
	var rows []EntryRow
	err := s.table.Get("entity_key", entityKey(entityType, entityUUID)).
		Order(dynamo.Ascending).All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query audit entries by entity: %w", err)
	}

	return rowsToEntries(rows)
}

func (s *DdbStore) ListByActor(ctx context.Context, actorUUID uuid.UUID) ([]Entry, error) {
	var rows []EntryRow
	err := s.table.Scan().
		Filter("actor_uuid = ?", actorUUID.String()).
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("scan audit entries by actor: %w", err)
	}

	entries, err := rowsToEntries(rows)
	if err != nil {
		return nil, err
	}
	sortOldestFirst(entries)
	return entries, nil
}

func entityKey(entityType EntityType, entityUUID uuid.UUID) string {
	return fmt.Sprintf("%s#%s", entityType, entityUUID)
}

func rowsToEntries(rows []EntryRow) ([]Entry, error) {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (row EntryRow) toEntry() (Entry, error) {
	entryUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return Entry{}, fmt.Errorf("parse audit entry uuid: %w", err)
	}
	entityUuid, err := uuid.Parse(row.EntityUuid)
	if err != nil {
		return Entry{}, fmt.Errorf("parse audit entity uuid: %w", err)
	}
	actorUuid, err := uuid.Parse(row.ActorUuid)
	if err != nil {
		return Entry{}, fmt.Errorf("parse audit actor uuid: %w", err)
	}

	return Entry{
		UUID:       entryUuid,
		EntityType: EntityType(row.EntityType),
		EntityUUID: entityUuid,
		Action:     row.Action,
		ActorUUID:  actorUuid,
		ActorRole:  row.ActorRole,
		Details:    row.Details,
		CreatedAt:  row.CreatedAt,
	}, nil
}
