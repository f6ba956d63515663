package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrAmbiguousTaskID     = errors.New("task id prefix matches more than one task")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrNothingToCapture    = errors.New("no task text found in input")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrRemoteRequestFailed = errors.New("remote request failed")
	ErrStorageUnavailable  = errors.New("local storage unavailable")
	ErrMalformedCache      = errors.New("malformed local cache")
	ErrEmptyOwners         = errors.New("owner list cannot be empty")
	ErrEmptyCollaborator   = errors.New("collaborator cannot be empty")
	ErrUnknownFormat       = errors.New("unknown export format")
	ErrConfigExists        = errors.New("config file already exists")
)
