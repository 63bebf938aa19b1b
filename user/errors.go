package user

import (
	"fmt"
	"net/http"

	"github.com/niri-portal/backend/srvcerror"
)

const ErrCodeUsernameTooShort = "username_too_short"

func newErrUsernameTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooShort,
		fmt.Sprintf("the username must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUsernameTooLong = "username_too_long"

func newErrUsernameTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooLong,
		"the username is too long",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUsernameAlreadyExists = "username_exists"

func newErrUsernameExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameAlreadyExists,
		"the username is already taken",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeEmailEmpty = "email_empty"

func newErrEmailEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailEmpty,
		"the email must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodePasswordTooShort = "password_too_short"

func newErrPasswordTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooShort,
		fmt.Sprintf("the password must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidRole = "invalid_role"

func newErrInvalidRole(role string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRole,
		fmt.Sprintf("%q is not a portal role", role),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeStateUtRequired = "state_ut_required"

func newErrStateUtRequired(role string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStateUtRequired,
		fmt.Sprintf("role %q requires a state / union territory", role),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUserNotFound = "user_not_found"

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"the user was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeUsernameOrPasswordIncorrect = "username_or_password_incorrect"

func newErrUsernameOrPasswordIncorrect() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameOrPasswordIncorrect,
		"the username or password is incorrect",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

func newErrInternalServerError() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
