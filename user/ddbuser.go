package user

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// UserRow is the DynamoDB shape of a portal account.
type UserRow struct {
	Uuid      string    `dynamo:"uuid,hash"` // Primary key
	Username  string    `dynamo:"username"`
	Email     string    `dynamo:"email"`
	Role      string    `dynamo:"role"`
	StateUt   string    `dynamo:"state_ut"`
	BcryptPwd []byte    `dynamo:"bcrypt_pwd"`
	Version   int       `dynamo:"version"` // For optimistic locking
	CreatedAt time.Time `dynamo:"created_at"`
}

// DdbUserRepo stores portal accounts in a DynamoDB table.
type DdbUserRepo struct {
	ddbClient  *dynamodb.Client
	tableName  string
	usersTable *dynamo.Table
}

func NewDdbUserRepo(ddbClient *dynamodb.Client, tableName string) *DdbUserRepo {
	repo := &DdbUserRepo{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(repo.ddbClient)
	table := db.Table(repo.tableName)
	repo.usersTable = &table

	return repo
}

func (r *DdbUserRepo) GetByUUID(ctx context.Context, userUuid uuid.UUID) (User, error) {
	row := new(UserRow)

	err := r.usersTable.Get("uuid", userUuid.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return row.toUser()
}

func (r *DdbUserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	var rows []UserRow
	err := r.usersTable.Scan().Filter("username = ?", username).All(ctx, &rows)
	if err != nil {
		return User{}, err
	}
	if len(rows) == 0 {
		return User{}, ErrNotFound
	}

	return rows[0].toUser()
}

// Store saves an account with optimistic locking on the version attribute.
func (r *DdbUserRepo) Store(ctx context.Context, u User) error {
	u.Version++
	row := rowFromUser(u)

	put := r.usersTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

func rowFromUser(u User) UserRow {
	return UserRow{
		Uuid:      u.UUID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		StateUt:   u.StateUt,
		BcryptPwd: u.BcryptPwd,
		Version:   u.Version,
		CreatedAt: u.CreatedAt,
	}
}

func (row UserRow) toUser() (User, error) {
	userUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return User{}, err
	}

	return User{
		UUID:      userUuid,
		Username:  row.Username,
		Email:     row.Email,
		Role:      row.Role,
		StateUt:   row.StateUt,
		BcryptPwd: row.BcryptPwd,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
	}, nil
}
