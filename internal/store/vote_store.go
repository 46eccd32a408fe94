package store

import (
	"errors" // Sentinel error checks
	"time"   // Acceptance timestamps

	"referendum_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/gorm" // GORM ORM library
)

// VoteStore abstracts vote persistence and enforces vote integrity.
type VoteStore interface {
	// CastVote records one vote for (userID, referendumID). It returns
	// ErrNotFound when the referendum is missing, ErrNotVotable when its
	// status disallows voting, and ErrDuplicateVote when a vote for the
	// pair already exists. Votes are immutable once cast.
	CastVote(userID, referendumID uint, value bool) (*domain.Vote, error)
	GetByID(id uint) (*domain.Vote, error)
	// List returns votes filtered by referendum and/or user; zero means
	// no filter.
	List(referendumID, userID uint) ([]domain.Vote, error)
	// DeleteOrphans removes votes whose owning user no longer exists and
	// returns how many were removed. Safe to re-run at any time.
	DeleteOrphans() (int64, error)
}

// GormVoteStore implements VoteStore using GORM.
type GormVoteStore struct{ DB *gorm.DB }

func (s *GormVoteStore) CastVote(userID, referendumID uint, value bool) (*domain.Vote, error) {
	vote := domain.Vote{
		UserID:       userID,       // Voting user
		ReferendumID: referendumID, // Voted referendum
		Value:        value,        // Yes/no value
	}
	// Single atomic transaction: status check, duplicate check and insert
	// either all commit or all roll back. The composite unique index on
	// (user_id, referendum_id) closes the window between the duplicate
	// check and the insert when two requests race.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ref domain.Referendum
		if err := tx.First(&ref, referendumID).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		if !ref.Votable(time.Now()) {
			return ErrNotVotable
		}
		// Application-level pre-check for a friendly error on the common path
		var count int64
		if err := tx.Model(&domain.Vote{}).
			Where("user_id = ? AND referendum_id = ?", userID, referendumID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateVote
		}
		if err := tx.Create(&vote).Error; err != nil {
			// A concurrent writer may commit between the check and the
			// insert; the unique index turns that into a duplicate here
			if isDuplicateKey(err) {
				return ErrDuplicateVote
			}
			return err
		}
		return nil // Commit transaction
	})
	if err != nil {
		if errors.Is(err, ErrNotVotable) {
			// Lazily persist the closed status for an elapsed deadline.
			// There is no scheduler: the first write access that observes
			// the elapsed end date records the transition. Done outside
			// the vote transaction so it survives the rollback.
			s.closeIfElapsed(referendumID)
		}
		return nil, err
	}
	return &vote, nil
}

// closeIfElapsed flips an approved referendum to closed once its end date
// has passed. The WHERE clause makes it a no-op in every other case.
func (s *GormVoteStore) closeIfElapsed(referendumID uint) {
	res := s.DB.Model(&domain.Referendum{}).
		Where("id = ? AND status = ? AND end_date IS NOT NULL AND end_date <= ?",
			referendumID, domain.StatusApproved, time.Now()).
		Update("status", domain.StatusClosed)
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{
			"referendum_id": referendumID,      // Target referendum
			"error":         res.Error.Error(), // Error message
		}).Error("Failed to close elapsed referendum") // The vote was already rejected; the next write retries
	}
}

func (s *GormVoteStore) GetByID(id uint) (*domain.Vote, error) {
	var v domain.Vote
	if err := s.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *GormVoteStore) List(referendumID, userID uint) ([]domain.Vote, error) {
	var votes []domain.Vote
	query := s.DB
	if referendumID != 0 {
		query = query.Where("referendum_id = ?", referendumID) // Filter by referendum
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID) // Filter by user
	}
	if err := query.Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *GormVoteStore) DeleteOrphans() (int64, error) {
	// Idempotent: a second run matches nothing and deletes zero rows
	res := s.DB.Where("user_id NOT IN (SELECT id FROM users)").Delete(&domain.Vote{})
	return res.RowsAffected, res.Error
}
