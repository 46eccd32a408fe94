package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"referendum_system/internal/api"
	"referendum_system/internal/domain"
	"referendum_system/internal/mocks"
	"referendum_system/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tagRouter(tags store.TagStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tags", api.ListTagsHandler(tags))
	r.POST("/tags", api.CreateTagHandler(tags))
	r.DELETE("/tags", api.DeleteTagHandler(tags))
	r.GET("/tags/referendum", api.GetReferendumTagsHandler(tags))
	r.POST("/tags/referendum", api.LinkTagHandler(tags))
	r.DELETE("/tags/referendum", api.UnlinkTagHandler(tags))
	return r
}

func TestCreateTag(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Create", mock.AnythingOfType("*domain.Tag")).Return(nil)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/tags", bytes.NewBufferString(`{"name":"environment"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	tags.AssertExpectations(t)
}

func TestCreateTagDuplicateName(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Create", mock.AnythingOfType("*domain.Tag")).Return(store.ErrConflict)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/tags", bytes.NewBufferString(`{"name":"environment"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTagInUse(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Delete", uint(3)).Return(store.ErrTagInUse)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/tags?tag_id=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnlinkedTag(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Delete", uint(3)).Return(nil)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/tags?tag_id=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteTagNotFound(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Delete", uint(99)).Return(store.ErrNotFound)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/tags?tag_id=99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReferendumTags(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("TagsFor", uint(1)).Return([]domain.Tag{{ID: 2, Name: "environment"}}, nil)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/tags/referendum?referendum_id=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp api.ReferendumTagsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ReferendumID)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "environment", resp.Tags[0].Name)
}

func TestGetReferendumTagsMissingReferendum(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("TagsFor", uint(99)).Return(nil, store.ErrNotFound)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/tags/referendum?referendum_id=99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkTag(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Link", uint(1), uint(2)).Return(&domain.Tag{ID: 2, Name: "environment"}, nil)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/tags/referendum", bytes.NewBufferString(`{"referendum_id":1,"tag_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLinkTagDuplicate(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Link", uint(1), uint(2)).Return(nil, store.ErrConflict)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/tags/referendum", bytes.NewBufferString(`{"referendum_id":1,"tag_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLinkTagMissingReferendum(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Link", uint(99), uint(2)).Return(nil, store.ErrNotFound)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/tags/referendum", bytes.NewBufferString(`{"referendum_id":99,"tag_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnlinkTagMissingLink(t *testing.T) {
	tags := new(mocks.TagStore)
	tags.On("Unlink", uint(1), uint(2)).Return(store.ErrNotFound)

	r := tagRouter(tags)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/tags/referendum?referendum_id=1&tag_id=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
