package core

import (
	"errors"
	"fmt"

	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

type ErrorCode string

const (
	ErrBadRequest       ErrorCode = "TUID_BAD_REQUEST"
	ErrBadID            ErrorCode = "TUID_BAD_ID"
	ErrNotFound         ErrorCode = "TUID_NOT_FOUND"
	ErrCapacityExceeded ErrorCode = "TUID_CAPACITY_EXCEEDED"
	ErrClock            ErrorCode = "TUID_CLOCK"
	ErrInternal         ErrorCode = "TUID_INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest, ErrBadID:
		return 400
	case ErrNotFound:
		return 404
	case ErrCapacityExceeded:
		return 429
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// FromTuidError maps a pkg/tuid error onto a service error code.
func FromTuidError(err error) *AppError {
	var ferr *tuid.FormatError
	switch {
	case errors.As(err, &ferr):
		return NewAppError(ErrBadID, ferr.Reason)
	case errors.Is(err, tuid.ErrCapacityExceeded):
		return NewAppError(ErrCapacityExceeded, "id capacity exceeded for the current time bucket")
	case errors.Is(err, tuid.ErrClockBehindEpoch):
		return NewAppError(ErrClock, "system clock reads before the reference epoch")
	default:
		return NewAppError(ErrInternal, err.Error())
	}
}
