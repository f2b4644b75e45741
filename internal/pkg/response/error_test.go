package response

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	previous := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { logging.SetLogger(previous) })

	r := gin.New()
	r.GET("/fail", func(c *gin.Context) { Error(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	return w, buf.String()
}

func TestErrorLogsCauseOfWrappedServerError(t *testing.T) {
	cause := fmt.Errorf("dial registry: %w", errors.New("i/o timeout"))
	w, logged := serveError(t, apperror.Wrap(cause, http.StatusBadGateway, "vehicle lookup service unavailable"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"vehicle lookup service unavailable"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "timeout")

	assert.Contains(t, logged, `"cause":"dial registry: i/o timeout"`)
	assert.Contains(t, logged, `"route":"/fail"`)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	w, logged := serveError(t, errors.New("pq: relation missing"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Contains(t, logged, "pq: relation missing")
}

func TestErrorClientErrorsNotLogged(t *testing.T) {
	w, logged := serveError(t, apperror.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, logged)
}
