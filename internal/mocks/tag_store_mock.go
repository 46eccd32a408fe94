package mocks

import (
	"referendum_system/internal/domain"

	"github.com/stretchr/testify/mock"
)

type TagStore struct{ mock.Mock }

func (m *TagStore) List() ([]domain.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *TagStore) Create(t *domain.Tag) error { return m.Called(t).Error(0) }

func (m *TagStore) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *TagStore) TagsFor(referendumID uint) ([]domain.Tag, error) {
	args := m.Called(referendumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *TagStore) Link(referendumID, tagID uint) (*domain.Tag, error) {
	args := m.Called(referendumID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *TagStore) Unlink(referendumID, tagID uint) error {
	return m.Called(referendumID, tagID).Error(0)
}
