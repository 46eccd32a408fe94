package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"referendum_system/internal/api"
	"referendum_system/internal/domain"
	"referendum_system/internal/mocks"
	"referendum_system/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// referendumRouter injects subjectID as the authenticated user, standing in
// for the JWT middleware. subjectID 0 leaves the request unauthenticated.
func referendumRouter(referendums store.ReferendumStore, users store.UserStore, subjectID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authStub := func(c *gin.Context) {
		if subjectID != 0 {
			c.Set("userID", subjectID)
		}
	}
	r.POST("/referendums", authStub, api.CreateReferendumHandler(referendums))
	r.GET("/referendums", api.GetReferendumsHandler(referendums))
	r.PATCH("/referendums", authStub, api.UpdateReferendumHandler(referendums, users))
	r.DELETE("/referendums", api.DeleteReferendumHandler(referendums))
	return r
}

func patchReferendum(r *gin.Engine, id string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/referendums?referendum_id="+id, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReferendum(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	referendums.On("Create", mock.AnythingOfType("*domain.Referendum")).Return(nil)

	r := referendumRouter(referendums, nil, 5)
	body := `{"title":"T1","description":"D1"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/referendums", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	// The creator is the token subject regardless of the request body
	created := referendums.Calls[0].Arguments.Get(0).(*domain.Referendum)
	assert.Equal(t, uint(5), created.CreatorID)
	assert.Equal(t, "T1", created.Title)
}

func TestCreateReferendumUnauthenticated(t *testing.T) {
	referendums := new(mocks.ReferendumStore)

	r := referendumRouter(referendums, nil, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/referendums", bytes.NewBufferString(`{"title":"T1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	referendums.AssertNotCalled(t, "Create")
}

func TestGetReferendumNotFound(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	referendums.On("GetByID", uint(99), false).Return(nil, store.ErrNotFound)

	r := referendumRouter(referendums, nil, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/referendums?referendum_id=99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReferendumExpandCreator(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	ref := &domain.Referendum{ID: 1, Title: "T1", CreatorID: 5, Creator: &domain.User{ID: 5, Username: "alice"}}
	referendums.On("GetByID", uint(1), true).Return(ref, nil)

	r := referendumRouter(referendums, nil, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/referendums?referendum_id=1&expand=creator", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []domain.Referendum
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].Creator)
	assert.Equal(t, "alice", resp[0].Creator.Username)
}

func TestCreatorEditsPendingReferendum(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(5)).Return(&domain.User{ID: 5, Role: domain.RoleUser}, nil)
	referendums.On("UpdateFields", uint(1), map[string]interface{}{"title": "New title"}).
		Return(&domain.Referendum{ID: 1, Title: "New title", Status: domain.StatusPending, CreatorID: 5}, nil)

	r := referendumRouter(referendums, users, 5)
	w := patchReferendum(r, "1", `{"title":"New title"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	referendums.AssertExpectations(t)
}

func TestCreatorEditAfterApprovalForbidden(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusApproved, CreatorID: 5}, nil)
	users.On("GetByID", uint(5)).Return(&domain.User{ID: 5, Role: domain.RoleUser}, nil)

	r := referendumRouter(referendums, users, 5)
	w := patchReferendum(r, "1", `{"title":"Too late"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	referendums.AssertNotCalled(t, "UpdateFields")
}

func TestCreatorCannotTouchStatus(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(5)).Return(&domain.User{ID: 5, Role: domain.RoleUser}, nil)

	r := referendumRouter(referendums, users, 5)
	w := patchReferendum(r, "1", `{"status":"approved"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	referendums.AssertNotCalled(t, "UpdateFields")
}

func TestNonCreatorEditForbidden(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(6)).Return(&domain.User{ID: 6, Role: domain.RoleUser}, nil)

	r := referendumRouter(referendums, users, 6)
	w := patchReferendum(r, "1", `{"title":"Not mine"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestModeratorApproves(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(9)).Return(&domain.User{ID: 9, Role: domain.RoleModerator}, nil)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	referendums.On("UpdateFields", uint(1), map[string]interface{}{
		"status":     domain.StatusApproved,
		"start_date": start,
	}).Return(&domain.Referendum{ID: 1, Status: domain.StatusApproved, StartDate: &start, CreatorID: 5}, nil)

	r := referendumRouter(referendums, users, 9)
	w := patchReferendum(r, "1", `{"status":"approved","start_date":"2026-09-01T00:00:00Z"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	referendums.AssertExpectations(t)
}

func TestApproveWithoutStartDate(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(9)).Return(&domain.User{ID: 9, Role: domain.RoleModerator}, nil)

	r := referendumRouter(referendums, users, 9)
	w := patchReferendum(r, "1", `{"status":"approved"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	referendums.AssertNotCalled(t, "UpdateFields")
}

func TestInvalidTransitionConflict(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusClosed, CreatorID: 5}, nil)
	users.On("GetByID", uint(9)).Return(&domain.User{ID: 9, Role: domain.RoleModerator}, nil)

	r := referendumRouter(referendums, users, 9)
	w := patchReferendum(r, "1", `{"status":"approved"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	referendums.AssertNotCalled(t, "UpdateFields")
}

func TestUnknownStatusRejected(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	users := new(mocks.UserStore)
	referendums.On("GetByID", uint(1), false).
		Return(&domain.Referendum{ID: 1, Status: domain.StatusPending, CreatorID: 5}, nil)
	users.On("GetByID", uint(9)).Return(&domain.User{ID: 9, Role: domain.RoleAdmin}, nil)

	r := referendumRouter(referendums, users, 9)
	w := patchReferendum(r, "1", `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReferendum(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	referendums.On("Delete", uint(1)).Return(&domain.Referendum{ID: 1, Title: "T1"}, nil)

	r := referendumRouter(referendums, nil, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/referendums?referendum_id=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.Referendum
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T1", resp.Title)
}

func TestDeleteReferendumNotFound(t *testing.T) {
	referendums := new(mocks.ReferendumStore)
	referendums.On("Delete", uint(99)).Return(nil, store.ErrNotFound)

	r := referendumRouter(referendums, nil, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/referendums?referendum_id=99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
