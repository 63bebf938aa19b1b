package submrepo

import "errors"

// ErrNotFound is returned when no submission exists for the given uuid.
var ErrNotFound = errors.New("submission not found")

// ErrVersionConflict is returned when a store was asked to persist a
// snapshot whose version does not follow the currently stored one. The
// losing writer must re-read and retry.
var ErrVersionConflict = errors.New("submission version conflict")
