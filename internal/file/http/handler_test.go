package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/file"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/storage"
)

type memRepository struct {
	rows map[string]*file.File
}

func (m *memRepository) Create(_ context.Context, f *file.File) error {
	m.rows[f.ID] = f
	return nil
}

func (m *memRepository) GetByID(_ context.Context, id string) (*file.File, error) {
	f, ok := m.rows[id]
	if !ok {
		return nil, file.ErrNotFound
	}
	return f, nil
}

func (m *memRepository) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := file.NewService(&memRepository{rows: map[string]*file.File{}}, store, storage.NewThumbnailer(100, 100))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUploadAndServe(t *testing.T) {
	r := newRouter(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 300, 150))))
	body, ct := multipartBody(t, "file", "car.png", img.Bytes())

	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp FileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "image/png", resp.ContentType)
	require.NotNil(t, resp.ThumbnailURL)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, img.Bytes(), w.Body.Bytes())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, *resp.ThumbnailURL, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}

func TestUploadErrors(t *testing.T) {
	r := newRouter(t)

	body, ct := multipartBody(t, "file", "notes.txt", []byte("hello there"))
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	body, ct = multipartBody(t, "image", "car.png", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/files/ab3f1c2e-4b5d-4e6f-9a0b-1c2d3e4f5a6b", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
