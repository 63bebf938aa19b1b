package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/niri-portal/backend/subm"
	"github.com/niri-portal/backend/subm/submerror"
	"github.com/niri-portal/backend/user/auth"
)

// actorFromRequest extracts the authenticated portal identity from the
// request's JWT claims.
func actorFromRequest(r *http.Request) (uuid.UUID, subm.Role, string, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return uuid.Nil, "", "", submerror.ErrJwtTokenMissing()
	}

	actorUuid, err := uuid.Parse(claims.UUID)
	if err != nil {
		return uuid.Nil, "", "", submerror.ErrJwtTokenMissing().SetDebug(err)
	}

	return actorUuid, subm.Role(claims.Role), claims.StateUt, nil
}
