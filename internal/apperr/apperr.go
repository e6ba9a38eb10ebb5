// Package apperr defines the error taxonomy shared by the cart and checkout
// services. Handlers map these onto HTTP status codes; everything else
// surfaces as a 500.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing caller input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing product, cart or cart line (HTTP 404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound builds a NotFoundError with the given message.
func NotFound(msg string) error {
	return &NotFoundError{Msg: msg}
}

// InsufficientStockError reports a quantity exceeding the product's live
// stock (HTTP 400). The message always carries the available count.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d items available in stock", e.Available)
}

// ErrEmptyCart is returned by checkout when the cart is absent or has no
// lines (HTTP 400).
var ErrEmptyCart = errors.New("Cart is empty")
