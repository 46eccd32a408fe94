package store

import (
	"referendum_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserStore abstracts user persistence.
type UserStore interface {
	// Create persists a new user, or returns ErrConflict when the
	// username or email is already taken.
	Create(u *domain.User) error
	// FindByUsername returns a user if it exists, or ErrNotFound.
	FindByUsername(username string) (*domain.User, error)
	// FindByEmail returns a user if it exists, or ErrNotFound.
	FindByEmail(email string) (*domain.User, error)
	GetByID(id uint) (*domain.User, error)
	// List returns users filtered by role, or all users when role is empty.
	List(role string) ([]domain.User, error)
	// Delete removes a user and returns the deleted record. Votes cast by
	// the user are intentionally left behind (see the orphan sweep).
	Delete(id uint) (*domain.User, error)
}

// GormUserStore implements UserStore using GORM.
type GormUserStore struct{ DB *gorm.DB }

func (s *GormUserStore) Create(u *domain.User) error {
	// Pre-check both unique columns so the caller gets a Conflict rather
	// than a raw driver error in the common case
	var count int64
	if err := s.DB.Model(&domain.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	if err := s.DB.Create(u).Error; err != nil {
		// Concurrent registration can still hit the unique index
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *GormUserStore) FindByUsername(username string) (*domain.User, error) {
	var u domain.User
	if err := s.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) GetByID(id uint) (*domain.User, error) {
	var u domain.User
	if err := s.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) List(role string) ([]domain.User, error) {
	var users []domain.User
	query := s.DB
	if role != "" {
		query = query.Where("role = ?", role) // Filter by role
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) Delete(id uint) (*domain.User, error) {
	var u domain.User
	if err := s.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	// No cascade to votes: orphaned rows preserve historical tallies until
	// the administrative sweep removes them
	if err := s.DB.Delete(&domain.User{}, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
