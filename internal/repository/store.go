package repository

import (
	"context"
	"errors"
)

// storeAPI is the subset of the store client the repositories rely on.
type storeAPI interface {
	Get(ctx context.Context, path string, dest interface{}) error
	Post(ctx context.Context, path string, body, dest interface{}) error
	Put(ctx context.Context, path string, body, dest interface{}) error
	Delete(ctx context.Context, path string) error
}

// RejectedError is returned when the store answers 2xx with success=false
// or without the expected payload.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "store rejected request"
	}
	return "store rejected request: " + e.Message
}

// AsRejected extracts a *RejectedError from err.
func AsRejected(err error) (*RejectedError, bool) {
	var re *RejectedError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

type ackEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (a ackEnvelope) err() error {
	if a.Success {
		return nil
	}
	msg := a.Message
	if msg == "" {
		msg = a.Error
	}
	return &RejectedError{Message: msg}
}
