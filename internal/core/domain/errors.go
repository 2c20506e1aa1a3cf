package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRetrievalFailed - the listing store could not execute the search.
	ErrRetrievalFailed = errors.New("retrieval failed")
	ErrListingNotFound = errors.New("listing not found")
)

// RetrievalError wraps the storage failure behind a search.
// errors.Is(err, ErrRetrievalFailed) holds for every RetrievalError.
type RetrievalError struct {
	Err error
}

func NewRetrievalError(err error) *RetrievalError {
	return &RetrievalError{Err: err}
}

func (e *RetrievalError) Error() string {
	if e.Err == nil {
		return ErrRetrievalFailed.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRetrievalFailed, e.Err)
}

// Cause returns the underlying storage message; empty when unknown.
func (e *RetrievalError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrievalFailed
}
