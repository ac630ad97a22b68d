package store

import (
	"errors"
	"fmt"
)

// Sentinel kinds for store errors.
var (
	// ErrConnection means the store is unreachable or rejected the credentials.
	ErrConnection = errors.New("store connection failed")
	// ErrQuery means the statement is invalid or references a missing object.
	ErrQuery = errors.New("query failed")
	// ErrEmptyResult means a query expected to return a row returned none.
	ErrEmptyResult = errors.New("empty result")
	// ErrUnsupportedDriver means no database/sql driver is registered under the name.
	ErrUnsupportedDriver = errors.New("unsupported driver")
)

// OpError records the failed operation, its kind and the underlying cause.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func wrap(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}
