package services

import (
	"errors"
	"fmt"
)

// ErrorKind tags pipeline failures with a machine-checkable kind. Controllers
// translate kinds to transport status codes; the services never carry HTTP
// semantics themselves.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindPriceMismatch     ErrorKind = "price_mismatch"
	KindInsufficientStock ErrorKind = "insufficient_stock"
	KindPersistence       ErrorKind = "persistence_failure"
	KindProvider          ErrorKind = "provider_failure"
	KindInvalid           ErrorKind = "invalid_input"
)

type Error struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	ProductID uint      `json:"product_id,omitempty"`
	Requested int       `json:"requested,omitempty"`
	Available int       `json:"available,omitempty"`
	cause     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err (or anything it wraps) is a pipeline Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// AsError unwraps err into a pipeline Error, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func errProductNotFound(productID uint) *Error {
	return &Error{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("no product found with id %d", productID),
		ProductID: productID,
	}
}

func errNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func errPriceMismatch(productID uint, claimed, current string) *Error {
	return &Error{
		Kind:      KindPriceMismatch,
		Message:   fmt.Sprintf("claimed price %s for product %d does not match current price %s", claimed, productID, current),
		ProductID: productID,
	}
}

func errInsufficientStock(productID uint, requested, available int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", productID, requested, available),
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func errPersistence(cause error) *Error {
	return &Error{
		Kind:    KindPersistence,
		Message: "an error occurred when accessing the database",
		cause:   cause,
	}
}

func errProvider(cause error) *Error {
	return &Error{
		Kind:    KindProvider,
		Message: fmt.Sprintf("payment provider call failed: %v", cause),
		cause:   cause,
	}
}

func errInvalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}
