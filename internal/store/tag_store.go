package store

import (
	"referendum_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// TagStore abstracts tag persistence and referendum-tag linking.
type TagStore interface {
	List() ([]domain.Tag, error)
	// Create persists a new tag, or returns ErrConflict on a duplicate name.
	Create(t *domain.Tag) error
	// Delete removes a tag. Returns ErrTagInUse while the tag is still
	// linked to any referendum.
	Delete(id uint) error
	// TagsFor returns the tags linked to a referendum, or ErrNotFound
	// when the referendum does not exist.
	TagsFor(referendumID uint) ([]domain.Tag, error)
	// Link attaches a tag to a referendum. Returns ErrNotFound when
	// either side is missing and ErrConflict on a duplicate link.
	Link(referendumID, tagID uint) (*domain.Tag, error)
	// Unlink detaches a tag, or returns ErrNotFound when no link exists.
	Unlink(referendumID, tagID uint) error
}

// GormTagStore implements TagStore using GORM.
type GormTagStore struct{ DB *gorm.DB }

func (s *GormTagStore) List() ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := s.DB.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *GormTagStore) Create(t *domain.Tag) error {
	var count int64
	if err := s.DB.Model(&domain.Tag{}).Where("name = ?", t.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	if err := s.DB.Create(t).Error; err != nil {
		// Concurrent creation can still hit the unique index
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *GormTagStore) Delete(id uint) error {
	// The existence check, in-use check and delete commit or roll back
	// together so a concurrent link cannot slip past the guard
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var tag domain.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		var linked int64
		if err := tx.Model(&domain.ReferendumTag{}).Where("tag_id = ?", id).Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return ErrTagInUse // Tag still linked to a referendum
		}
		return tx.Delete(&domain.Tag{}, id).Error
	})
}

func (s *GormTagStore) TagsFor(referendumID uint) ([]domain.Tag, error) {
	var ref domain.Referendum
	if err := s.DB.First(&ref, referendumID).Error; err != nil {
		return nil, err
	}
	var tags []domain.Tag
	// Join through the link table
	err := s.DB.Model(&domain.Tag{}).
		Joins("JOIN referendum_tags ON referendum_tags.tag_id = tags.id").
		Where("referendum_tags.referendum_id = ?", referendumID).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *GormTagStore) Link(referendumID, tagID uint) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ref domain.Referendum
		if err := tx.First(&ref, referendumID).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		if err := tx.First(&tag, tagID).Error; err != nil {
			return err // Rolls back, surfaces ErrNotFound
		}
		var count int64
		if err := tx.Model(&domain.ReferendumTag{}).
			Where("referendum_id = ? AND tag_id = ?", referendumID, tagID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict // Link already exists
		}
		link := domain.ReferendumTag{ReferendumID: referendumID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			// Concurrent linking can still hit the composite primary key
			if isDuplicateKey(err) {
				return ErrConflict
			}
			return err
		}
		return nil // Commit transaction
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *GormTagStore) Unlink(referendumID, tagID uint) error {
	res := s.DB.Where("referendum_id = ? AND tag_id = ?", referendumID, tagID).
		Delete(&domain.ReferendumTag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound // No such link
	}
	return nil
}
