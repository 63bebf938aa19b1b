package submrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/subm"
)

// SubmRow is the DynamoDB shape of a submission. Comments ride on the
// item so a transition and its appended comment are one write.
type SubmRow struct {
	Uuid           string         `dynamo:"uuid,hash"`
	SubmID         string         `dynamo:"subm_id"`
	OwnerUuid      string         `dynamo:"owner_uuid"`
	StateUt        string         `dynamo:"state_ut"`
	Status         string         `dynamo:"status"`
	FormData       map[string]any `dynamo:"form_data"`
	RejectionCount int            `dynamo:"rejection_count"`
	ReviewComments []CommentRow   `dynamo:"review_comments"`
	Version        int            `dynamo:"version"` // optimistic locking
	CreatedAt      time.Time      `dynamo:"created_at"`
	UpdatedAt      time.Time      `dynamo:"updated_at"`
}

type CommentRow struct {
	Uuid       string    `dynamo:"uuid"`
	SubmUuid   string    `dynamo:"subm_uuid"`
	AuthorUuid string    `dynamo:"author_uuid"`
	AuthorRole string    `dynamo:"author_role"`
	Type       string    `dynamo:"type"`
	Text       string    `dynamo:"text"`
	CreatedAt  time.Time `dynamo:"created_at"`
}

// DdbRepo stores submissions in DynamoDB. Every write is conditioned on
// the previous version and carries the audit entry in the same
// transaction, so a transition and its audit line land together or not at
// all.
type DdbRepo struct {
	ddbClient  *dynamodb.Client
	tableName  string
	db         *dynamo.DB
	submsTable *dynamo.Table
	auditStore *audit.DdbStore
}

func NewDdbRepo(ddbClient *dynamodb.Client, tableName string, auditStore *audit.DdbStore) *DdbRepo {
	repo := &DdbRepo{
		ddbClient:  ddbClient,
		tableName:  tableName,
		auditStore: auditStore,
	}
	db := dynamo.NewFromIface(ddbClient)
	table := db.Table(tableName)
	repo.db = db
	repo.submsTable = &table

	return repo
}

func (r *DdbRepo) GetSubm(ctx context.Context, submUuid uuid.UUID) (subm.Submission, error) {
	row := new(SubmRow)
	err := r.submsTable.Get("uuid", submUuid.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return subm.Submission{}, ErrNotFound
		}
		return subm.Submission{}, fmt.Errorf("get submission: %w", err)
	}

	return row.toSubm()
}

func (r *DdbRepo) ListSubms(ctx context.Context) ([]subm.Submission, error) {
	var rows []SubmRow
	err := r.submsTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("scan submissions: %w", err)
	}

	out := make([]subm.Submission, 0, len(rows))
	for _, row := range rows {
		s, err := row.toSubm()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *DdbRepo) StoreSubmWithAudit(ctx context.Context, s subm.Submission, entry audit.Entry) error {
	row := rowFromSubm(s)

	put := r.submsTable.Put(row)
	if s.Version == 1 {
		put = put.If("attribute_not_exists('uuid')")
	} else {
		put = put.If("version = ?", s.Version-1)
	}

	auditPut := r.auditStore.Table().Put(audit.RowFromEntry(entry))

	tx := r.db.WriteTx()
	tx.Put(put)
	tx.Put(auditPut)
	if err := tx.Run(ctx); err != nil {
		if isCondCheckFailed(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("store submission with audit: %w", err)
	}
	return nil
}

func isCondCheckFailed(err error) bool {
	var condFailed *ddbtypes.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return true
	}

	var txCanceled *ddbtypes.TransactionCanceledException
	if errors.As(err, &txCanceled) {
		for _, reason := range txCanceled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

func rowFromSubm(s subm.Submission) SubmRow {
	comments := make([]CommentRow, 0, len(s.ReviewComments))
	for _, c := range s.ReviewComments {
		comments = append(comments, CommentRow{
			Uuid:       c.UUID.String(),
			SubmUuid:   c.SubmUUID.String(),
			AuthorUuid: c.AuthorUUID.String(),
			AuthorRole: string(c.AuthorRole),
			Type:       string(c.Type),
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}

	return SubmRow{
		Uuid:           s.UUID.String(),
		SubmID:         s.SubmID,
		OwnerUuid:      s.OwnerUUID.String(),
		StateUt:        s.StateUt,
		Status:         string(s.Status),
		FormData:       s.FormData,
		RejectionCount: s.RejectionCount,
		ReviewComments: comments,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (row SubmRow) toSubm() (subm.Submission, error) {
	submUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return subm.Submission{}, fmt.Errorf("parse submission uuid: %w", err)
	}
	ownerUuid, err := uuid.Parse(row.OwnerUuid)
	if err != nil {
		return subm.Submission{}, fmt.Errorf("parse submission owner uuid: %w", err)
	}

	comments := make([]subm.ReviewComment, 0, len(row.ReviewComments))
	for _, c := range row.ReviewComments {
		comment, err := c.toComment()
		if err != nil {
			return subm.Submission{}, err
		}
		comments = append(comments, comment)
	}

	return subm.Submission{
		UUID:           submUuid,
		SubmID:         row.SubmID,
		OwnerUUID:      ownerUuid,
		StateUt:        row.StateUt,
		Status:         subm.Status(row.Status),
		FormData:       row.FormData,
		RejectionCount: row.RejectionCount,
		ReviewComments: comments,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func (row CommentRow) toComment() (subm.ReviewComment, error) {
	commentUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return subm.ReviewComment{}, fmt.Errorf("parse comment uuid: %w", err)
	}
	submUuid, err := uuid.Parse(row.SubmUuid)
	if err != nil {
		return subm.ReviewComment{}, fmt.Errorf("parse comment subm uuid: %w", err)
	}
	authorUuid, err := uuid.Parse(row.AuthorUuid)
	if err != nil {
		return subm.ReviewComment{}, fmt.Errorf("parse comment author uuid: %w", err)
	}

	return subm.ReviewComment{
		UUID:       commentUuid,
		SubmUUID:   submUuid,
		AuthorUUID: authorUuid,
		AuthorRole: subm.Role(row.AuthorRole),
		Type:       subm.CommentType(row.Type),
		Text:       row.Text,
		CreatedAt:  row.CreatedAt,
	}, nil
}
