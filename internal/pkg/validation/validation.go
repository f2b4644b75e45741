// Package validation registers custom binding tags on gin's validator and
// renders validation failures for API clients.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	mu         sync.Mutex
	registered = map[string]bool{}
)

// Register installs fn as a binding tag. Registering a tag twice is a no-op,
// so handler packages and tests can call it freely.
func Register(tag string, fn validator.Func) error {
	mu.Lock()
	defer mu.Unlock()

	if registered[tag] {
		return nil
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register %s validator: %w", tag, err)
	}
	registered[tag] = true
	return nil
}

// MustRegister is Register that panics, for package initialisation.
func MustRegister(tag string, fn validator.Func) {
	if err := Register(tag, fn); err != nil {
		panic(err)
	}
}

// Describe turns validator errors into "field: reason" messages joined by
// "; ". Other errors are returned as is.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fe.Field()+": "+reason(fe))
	}
	return strings.Join(messages, "; ")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url", "http_url":
		return "must be a valid URL"
	case "vrm":
		return "must be a valid UK registration number"
	case "booking_status":
		return "must be a valid booking status"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
