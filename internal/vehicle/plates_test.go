package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRegistration(t *testing.T) {
	assert.Equal(t, "AB12CDE", NormalizeRegistration(" ab12 cde "))
	assert.Equal(t, "A123BCD", NormalizeRegistration("a123\tbcd"))
}

func TestValidRegistration(t *testing.T) {
	valid := []string{"AB12CDE", "ab12 cde", "A123BCD", "ABC123D", "1234AB", "ABC1234", "AZ1234", "K1"}
	for _, reg := range valid {
		assert.True(t, ValidRegistration(reg), reg)
	}

	invalid := []string{"", "   ", "AB12CDEF", "12345678", "AB-12-CDE", "ABCDEFG", "1234567"}
	for _, reg := range invalid {
		assert.False(t, ValidRegistration(reg), reg)
	}
}
