package domain

import "time"

// Referendum statuses
const (
	StatusPending  = "pending"  // Awaiting moderation
	StatusApproved = "approved" // Accepting votes
	StatusRejected = "rejected" // Terminal, rejected by a moderator
	StatusClosed   = "closed"   // Terminal, voting finished
)

// Referendum Model
type Referendum struct {
	ID          uint       `gorm:"primaryKey" json:"id"`                 // Primary key
	Title       string     `gorm:"not null" json:"title"`                // Referendum title
	Description string     `json:"description"`                         // Referendum description
	Status      string     `gorm:"default:pending" json:"status"`       // Lifecycle status
	StartDate   *time.Time `json:"start_date,omitempty"`                // Set by a moderator on approval
	EndDate     *time.Time `json:"end_date,omitempty"`                  // Optional voting deadline
	CreatorID   uint       `json:"creator_id"`                          // Foreign key to User
	Creator     *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"` // Creator association
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`    // Timestamp of creation
}

// ValidStatus reports whether status is one of the known lifecycle statuses
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// CanTransition reports whether a referendum may move from one status to
// another. Rejected and closed are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusClosed
	}
	return false
}

// Votable reports whether the referendum accepts new votes. A referendum
// whose end date has elapsed no longer accepts votes even if its stored
// status has not been updated yet.
func (r *Referendum) Votable(now time.Time) bool {
	if r.Status != StatusApproved {
		return false
	}
	return r.EndDate == nil || now.Before(*r.EndDate)
}
