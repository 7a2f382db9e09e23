package client

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the concrete error types below.
var (
	ErrNetwork    = errors.New("order service unreachable")
	ErrRejected   = errors.New("order rejected")
	ErrUnexpected = errors.New("unexpected order service response")
)

// NetworkError reports that the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// RejectedError reports a 4xx response. Fields carries per-field messages
// when the service rejected the payload during validation.
type RejectedError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *RejectedError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s (status %d): %s", ErrRejected, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (status %d, %s): %s", ErrRejected, e.StatusCode, e.Code, e.Message)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

// UnexpectedError reports any other non-2xx response, or a 2xx response
// whose body could not be read.
type UnexpectedError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (status %d): %v", ErrUnexpected, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s (status %d): %s", ErrUnexpected, e.StatusCode, e.Body)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

func (e *UnexpectedError) Is(target error) bool { return target == ErrUnexpected }
