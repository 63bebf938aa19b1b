package submerror

import (
	"fmt"
	"net/http"

	"github.com/niri-portal/backend/srvcerror"
)

const ErrCodeInvalidTransition = "invalid_transition"

func ErrInvalidTransition(action string, status string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTransition,
		fmt.Sprintf("action %q is not allowed while the submission is in status %q", action, status),
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeUnauthorizedActor = "unauthorized_actor"

func ErrUnauthorizedActor(role string, action string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorizedActor,
		fmt.Sprintf("role %q is not permitted to perform action %q", role, action),
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeMissingRequiredComment = "missing_required_comment"

func ErrMissingRequiredComment(action string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingRequiredComment,
		fmt.Sprintf("action %q requires a non-empty comment", action),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeCommentTooLong = "comment_too_long"

func ErrCommentTooLong(maxLen int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCommentTooLong,
		fmt.Sprintf("comment exceeds the maximum length of %d characters", maxLen),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeConcurrentModification = "concurrent_modification"

func ErrConcurrentModification() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeConcurrentModification,
		"the submission was modified by someone else, refresh and try again",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"the requested submission was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeUnknownAction = "unknown_action"

func ErrUnknownAction(action string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnknownAction,
		fmt.Sprintf("unknown workflow action %q", action),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUnauthorized = "unauthorized_access"

func ErrJwtTokenMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorized,
		"a valid bearer token is required",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

func ErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}

const ErrCodeJurisdictionMismatch = "jurisdiction_mismatch"

func ErrJurisdictionMismatch() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeJurisdictionMismatch,
		"the submission belongs to a different jurisdiction",
	).SetHttpStatusCode(http.StatusForbidden)
}
