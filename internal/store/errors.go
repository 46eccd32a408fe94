package store

import (
	"errors" // Sentinel errors

	"gorm.io/gorm" // GORM ORM library
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// Sentinel errors for the write-path invariants. Handlers translate these
// into HTTP statuses; anything else is a storage failure.
var (
	ErrConflict      = errors.New("record already exists")
	ErrDuplicateVote = errors.New("vote already cast for this referendum")
	ErrNotVotable    = errors.New("referendum does not accept votes")
	ErrTagInUse      = errors.New("tag is linked to a referendum")
)

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
