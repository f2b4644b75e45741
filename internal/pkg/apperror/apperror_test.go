package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	root := errors.New("connection reset")
	wrapped := Wrap(root, http.StatusBadGateway, "upstream error")

	assert.Equal(t, root, Cause(wrapped))
	assert.Equal(t, root, Cause(fmt.Errorf("lookup: %w", wrapped)))
	assert.Nil(t, Cause(ErrForbidden))
	assert.Nil(t, Cause(root))

	assert.ErrorIs(t, wrapped, root)
	assert.Equal(t, "upstream error", wrapped.Error())
}
