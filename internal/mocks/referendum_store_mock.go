package mocks

import (
	"referendum_system/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReferendumStore struct{ mock.Mock }

func (m *ReferendumStore) Create(r *domain.Referendum) error { return m.Called(r).Error(0) }

func (m *ReferendumStore) GetByID(id uint, expandCreator bool) (*domain.Referendum, error) {
	args := m.Called(id, expandCreator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referendum), args.Error(1)
}

func (m *ReferendumStore) List(creatorID uint, expandCreator bool) ([]domain.Referendum, error) {
	args := m.Called(creatorID, expandCreator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referendum), args.Error(1)
}

func (m *ReferendumStore) UpdateFields(id uint, fields map[string]interface{}) (*domain.Referendum, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referendum), args.Error(1)
}

func (m *ReferendumStore) Delete(id uint) (*domain.Referendum, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referendum), args.Error(1)
}
