package store

import (
	"referendum_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ReferendumStore abstracts referendum persistence.
type ReferendumStore interface {
	// Create persists a new referendum in pending status.
	Create(r *domain.Referendum) error
	// GetByID returns a referendum, optionally eager-loading its creator.
	GetByID(id uint, expandCreator bool) (*domain.Referendum, error)
	// List returns referendums, filtered by creator when creatorID is
	// non-zero, optionally eager-loading creators.
	List(creatorID uint, expandCreator bool) ([]domain.Referendum, error)
	// UpdateFields applies an explicit set of column updates.
	UpdateFields(id uint, fields map[string]interface{}) (*domain.Referendum, error)
	// Delete removes a referendum together with its votes and tag links
	// and returns the deleted record.
	Delete(id uint) (*domain.Referendum, error)
}

// GormReferendumStore implements ReferendumStore using GORM.
type GormReferendumStore struct{ DB *gorm.DB }

func (s *GormReferendumStore) Create(r *domain.Referendum) error {
	r.Status = domain.StatusPending // New referendums always start pending
	return s.DB.Create(r).Error
}

func (s *GormReferendumStore) GetByID(id uint, expandCreator bool) (*domain.Referendum, error) {
	var r domain.Referendum
	query := s.DB
	if expandCreator {
		query = query.Preload("Creator") // Eager-load the creator relation
	}
	if err := query.First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormReferendumStore) List(creatorID uint, expandCreator bool) ([]domain.Referendum, error) {
	var refs []domain.Referendum
	query := s.DB
	if expandCreator {
		query = query.Preload("Creator") // Eager-load the creator relation
	}
	if creatorID != 0 {
		query = query.Where("creator_id = ?", creatorID) // Filter by creator
	}
	if err := query.Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *GormReferendumStore) UpdateFields(id uint, fields map[string]interface{}) (*domain.Referendum, error) {
	var r domain.Referendum
	// Apply the whitelisted updates and re-read inside one transaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		if len(fields) == 0 {
			return nil // Nothing to change
		}
		if err := tx.Model(&domain.Referendum{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.First(&r, id).Error // Re-read the updated record
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormReferendumStore) Delete(id uint) (*domain.Referendum, error) {
	var r domain.Referendum
	// Remove votes and tag links together with the referendum so no
	// dangling rows survive an admin deletion
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		if err := tx.Where("referendum_id = ?", id).Delete(&domain.Vote{}).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Where("referendum_id = ?", id).Delete(&domain.ReferendumTag{}).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Delete(&domain.Referendum{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
