package mocks

import (
	"referendum_system/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteStore struct{ mock.Mock }

func (m *VoteStore) CastVote(userID, referendumID uint, value bool) (*domain.Vote, error) {
	args := m.Called(userID, referendumID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *VoteStore) GetByID(id uint) (*domain.Vote, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *VoteStore) List(referendumID, userID uint) ([]domain.Vote, error) {
	args := m.Called(referendumID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vote), args.Error(1)
}

func (m *VoteStore) DeleteOrphans() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
