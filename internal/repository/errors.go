package repository

import "errors"

// Sentinel errors for storage facts. Implementations return these (optionally
// wrapped) so services can translate them into caller-facing error kinds.
var (
	// ErrNotFound: the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName: a user with the same display name already exists.
	ErrDuplicateName = errors.New("name already taken")
	// ErrVersionConflict: a concurrent writer advanced the ticket version
	// between the caller's read and write.
	ErrVersionConflict = errors.New("version conflict")
)
