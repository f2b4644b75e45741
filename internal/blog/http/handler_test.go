package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/blog"
)

const postID = "5d9b1f7a-2c3e-4a5b-8c6d-7e8f9a0b1c2d"

type stubService struct {
	blog.Service
	post       *blog.Post
	listFilter blog.Filter
}

func (s *stubService) GetByID(context.Context, string) (*blog.Post, error) {
	if s.post == nil {
		return nil, blog.ErrNotFound
	}
	return s.post, nil
}

func (s *stubService) GetBySlug(_ context.Context, slug string) (*blog.Post, error) {
	if s.post == nil || s.post.Slug != slug {
		return nil, blog.ErrNotFound
	}
	return s.post, nil
}

func (s *stubService) List(_ context.Context, f blog.Filter) ([]*blog.Post, int, error) {
	s.listFilter = f
	return nil, 0, nil
}

func (s *stubService) Create(context.Context, blog.CreateRequest) (*blog.Post, error) {
	return nil, blog.ErrSlugTaken
}

func newRouter(svc blog.Service, principal *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if principal != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), *principal))
			c.Next()
		})
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	svc := &stubService{post: &blog.Post{ID: postID, Slug: "winter-tyres", Published: false}}

	public := newRouter(svc, nil)
	assert.Equal(t, http.StatusNotFound, get(public, "/v1/blogs/"+postID).Code)
	assert.Equal(t, http.StatusNotFound, get(public, "/v1/blogs/winter-tyres").Code)

	admin := newRouter(svc, &auth.Principal{UserID: "u1", Role: auth.RoleAdmin})
	assert.Equal(t, http.StatusOK, get(admin, "/v1/blogs/"+postID).Code)
	assert.Equal(t, http.StatusOK, get(admin, "/v1/blogs/winter-tyres").Code)
}

func TestListForcesPublishedForPublic(t *testing.T) {
	svc := &stubService{}

	get(newRouter(svc, nil), "/v1/blogs?published=false")
	if assert.NotNil(t, svc.listFilter.Published) {
		assert.True(t, *svc.listFilter.Published)
	}

	get(newRouter(svc, &auth.Principal{UserID: "u1", Role: auth.RoleAdmin}), "/v1/blogs?published=false")
	if assert.NotNil(t, svc.listFilter.Published) {
		assert.False(t, *svc.listFilter.Published)
	}

	get(newRouter(svc, &auth.Principal{UserID: "u1", Role: auth.RoleAdmin}), "/v1/blogs")
	assert.Nil(t, svc.listFilter.Published)
}

func TestCreateConflict(t *testing.T) {
	r := newRouter(&stubService{}, &auth.Principal{UserID: "u1", Role: auth.RoleAdmin})
	req := httptest.NewRequest(http.MethodPost, "/v1/blogs", strings.NewReader(`{"title":"Brakes","slug":"brakes"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slug already in use")
}
