package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoHistory indicates the event log holds no replayable snapshots
	// for the requested profile. Retryable once events have been recorded.
	ErrNoHistory = errors.New("no replayable history")

	// ErrExportInProgress indicates another export holds the export lock.
	// The caller gets an immediate failure, never a queued wait.
	ErrExportInProgress = errors.New("EXPORT_IN_PROGRESS: another export is currently running")

	// ErrConfirmPhrase indicates a destructive operation was invoked
	// without its exact confirmation phrase.
	ErrConfirmPhrase = errors.New("confirmation phrase mismatch")

	// ErrCorruptArchive indicates an export archive is missing its
	// required profile entry or cannot be read.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrScopeDisabled indicates the profile is disabled for this Base
	// via its scope setting.
	ErrScopeDisabled = errors.New("profile scope disabled")

	// ErrTooFewPapers indicates the Base holds too few papers for the
	// requested operation.
	ErrTooFewPapers = errors.New("too few papers")
)
