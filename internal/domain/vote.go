package domain

import "time"

// Vote Model. Votes are immutable once cast; the composite unique index on
// (user_id, referendum_id) enforces one vote per user per referendum at the
// storage layer. There is no foreign key cascade from users: votes of a
// deleted user stay behind and are removed by the administrative sweep.
type Vote struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                            // Primary key
	UserID       uint      `gorm:"uniqueIndex:idx_user_referendum" json:"user_id"`  // Voting user
	ReferendumID uint      `gorm:"uniqueIndex:idx_user_referendum" json:"referendum_id"` // Voted referendum
	Value        bool      `json:"vote_value"`                                      // true = yes, false = no
	VotedAt      time.Time `gorm:"autoCreateTime" json:"voted_at"`                  // Timestamp of acceptance
}
