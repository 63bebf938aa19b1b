package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a portal account. Role is one of the workflow roles; StateUt is
// the state / union territory a state-level account belongs to and is
// empty for central (MoSPI) and admin accounts.
type User struct {
	UUID      uuid.UUID
	Username  string
	Email     string
	Role      string
	StateUt   string
	BcryptPwd []byte
	Version   int
	CreatedAt time.Time
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
	StateUt  string
}

type LoginParams struct {
	Username string
	Password string
}
