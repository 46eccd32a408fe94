package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusClosed, true},
		{StatusPending, StatusClosed, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusClosed, false},
		{StatusClosed, StatusApproved, false},
		{StatusClosed, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusApproved))
	assert.True(t, ValidStatus(StatusRejected))
	assert.True(t, ValidStatus(StatusClosed))
	assert.False(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleModerator))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}

func TestVotable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	open := Referendum{Status: StatusApproved}
	assert.True(t, open.Votable(now), "approved without deadline")

	scheduled := Referendum{Status: StatusApproved, EndDate: &future}
	assert.True(t, scheduled.Votable(now), "approved before deadline")

	elapsed := Referendum{Status: StatusApproved, EndDate: &past}
	assert.False(t, elapsed.Votable(now), "approved after deadline")

	for _, status := range []string{StatusPending, StatusRejected, StatusClosed} {
		r := Referendum{Status: status}
		assert.False(t, r.Votable(now), status)
	}
}
