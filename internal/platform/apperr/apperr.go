package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStoreUnavailable marks failures to reach the underlying document store.
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError reports missing or invalid fields on a write. The write is
// never partially applied.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Validation builds a ValidationError from a list of problems. It returns nil
// when the list is empty so callers can return it unconditionally.
func Validation(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// NotFoundError is returned when an id-based lookup finds nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// Unavailable wraps a store error so that errors.Is(err, ErrStoreUnavailable)
// holds while the original cause stays in the chain.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// Collector accumulates validation problems while walking a payload.
type Collector struct {
	fields []string
}

func (c *Collector) Add(format string, args ...interface{}) {
	c.fields = append(c.fields, fmt.Sprintf(format, args...))
}

// Require records "<name> is required" when value is blank.
func (c *Collector) Require(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.fields = append(c.fields, name+" is required")
	}
}

// OneOf records an error when a non-empty value is outside the allowed set.
func (c *Collector) OneOf(name, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.fields = append(c.fields, fmt.Sprintf("%s must be one of [%s], got %q", name, strings.Join(allowed, ", "), value))
}

func (c *Collector) Err() error {
	return Validation(c.fields...)
}
