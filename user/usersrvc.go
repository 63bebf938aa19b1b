package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/subm"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned by repos when no account matches.
var ErrNotFound = errors.New("user not found")

const (
	minUsernameLength = 2
	maxUsernameLength = 32
	minPasswordLength = 8
)

// UserRepo persists portal accounts.
type UserRepo interface {
	Store(ctx context.Context, u User) error
	GetByUUID(ctx context.Context, userUuid uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type UserSrvc struct {
	repo UserRepo
}

func NewUserSrvc(repo UserRepo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

// Register creates a portal account. State-level roles must name their
// state / union territory; central roles must not carry one.
func (s *UserSrvc) Register(ctx context.Context, params RegisterParams) (User, error) {
	username := strings.TrimSpace(params.Username)
	if len(username) < minUsernameLength {
		return User{}, newErrUsernameTooShort(minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return User{}, newErrUsernameTooLong()
	}
	if strings.TrimSpace(params.Email) == "" {
		return User{}, newErrEmailEmpty()
	}
	if len(params.Password) < minPasswordLength {
		return User{}, newErrPasswordTooShort(minPasswordLength)
	}

	role := subm.Role(params.Role)
	if !role.IsValid() {
		return User{}, newErrInvalidRole(params.Role)
	}
	stateUt := strings.ToUpper(strings.TrimSpace(params.StateUt))
	if (role == subm.RoleNodalOfficer || role == subm.RoleStateApprover) && stateUt == "" {
		return User{}, newErrStateUtRequired(params.Role)
	}
	if role == subm.RoleMospiReviewer || role == subm.RoleMospiApprover {
		stateUt = ""
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, newErrUsernameExists()
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, newErrInternalServerError().SetDebug(err)
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, newErrInternalServerError().SetDebug(err)
	}

	created := User{
		UUID:      uuid.New(),
		Username:  username,
		Email:     strings.TrimSpace(params.Email),
		Role:      string(role),
		StateUt:   stateUt,
		BcryptPwd: bcryptPwd,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Store(ctx, created); err != nil {
		return User{}, newErrInternalServerError().SetDebug(err)
	}

	return created, nil
}

// Login verifies credentials and returns the account. The caller mints
// the JWT; the service never sees signing keys.
func (s *UserSrvc) Login(ctx context.Context, params LoginParams) (User, error) {
	found, err := s.repo.GetByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, newErrUsernameOrPasswordIncorrect()
		}
		return User{}, newErrInternalServerError().SetDebug(err)
	}

	if err := bcrypt.CompareHashAndPassword(found.BcryptPwd, []byte(params.Password)); err != nil {
		return User{}, newErrUsernameOrPasswordIncorrect()
	}

	return found, nil
}

func (s *UserSrvc) GetByUUID(ctx context.Context, userUuid uuid.UUID) (User, error) {
	found, err := s.repo.GetByUUID(ctx, userUuid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, newErrUserNotFound()
		}
		return User{}, newErrInternalServerError().SetDebug(err)
	}
	return found, nil
}
