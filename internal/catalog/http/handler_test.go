package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
)

const entryID = "3f2e1d0c-9b8a-4765-a4b3-c2d1e0f9a8b7"

type stubService struct {
	catalog.Service
	created    *catalog.CreateRequest
	listFilter catalog.Filter
	deleted    string
}

func (s *stubService) Create(_ context.Context, req catalog.CreateRequest) (*catalog.Entry, error) {
	s.created = &req
	return &catalog.Entry{ID: entryID, Name: req.Name, BasePrice: req.BasePrice}, nil
}

func (s *stubService) List(_ context.Context, f catalog.Filter) ([]*catalog.Entry, int, error) {
	s.listFilter = f
	return []*catalog.Entry{{ID: entryID, Name: "MOT", BasePrice: 54.85}}, 1, nil
}

func (s *stubService) Update(context.Context, string, catalog.UpdateRequest) (*catalog.Entry, error) {
	return nil, catalog.ErrNotFound
}

func (s *stubService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func newRouter(svc catalog.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func executeRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateService(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := executeRequest(r, http.MethodPost, "/v1/services", `{"name":"Free check","basePrice":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Zero(t, svc.created.BasePrice)

	svc.created = nil
	assert.Equal(t, http.StatusBadRequest, executeRequest(r, http.MethodPost, "/v1/services", `{"name":"MOT"}`).Code)
	assert.Equal(t, http.StatusBadRequest, executeRequest(r, http.MethodPost, "/v1/services", `{"name":"MOT","basePrice":-5}`).Code)
	assert.Nil(t, svc.created)
}

func TestListServicesDefaultsToAscending(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := executeRequest(r, http.MethodGet, "/v1/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.listFilter.SortDesc)
	assert.Contains(t, w.Body.String(), `"basePrice":54.85`)

	require.Equal(t, http.StatusOK, executeRequest(r, http.MethodGet, "/v1/services?sortBy=basePrice&sortOrder=desc", "").Code)
	assert.True(t, svc.listFilter.SortDesc)
	assert.Equal(t, "basePrice", svc.listFilter.SortBy)
}

func TestUpdateAndDeleteService(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	assert.Equal(t, http.StatusNotFound, executeRequest(r, http.MethodPatch, "/v1/services/"+entryID, `{"basePrice":10}`).Code)
	assert.Equal(t, http.StatusNoContent, executeRequest(r, http.MethodDelete, "/v1/services/"+entryID, "").Code)
	assert.Equal(t, entryID, svc.deleted)
}
