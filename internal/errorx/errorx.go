package errorx

import (
	"errors"
	"fmt"
)

type Code int

const (
	Unknown Code = iota
	NotFound
	InvalidOperation
	InvalidState
	ConflictRetry
	BadRequest
	Unauthenticated
	PermissionDenied
	Unavailable
)

var codeNames = map[Code]string{
	Unknown:          "unknown",
	NotFound:         "not_found",
	InvalidOperation: "invalid_operation",
	InvalidState:     "invalid_state",
	ConflictRetry:    "conflict_retry",
	BadRequest:       "bad_request",
	Unauthenticated:  "unauthenticated",
	PermissionDenied: "permission_denied",
	Unavailable:      "unavailable",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinels for errors.Is. They match any Error carrying the same code.
var (
	ErrNotFound         = Error{Code: NotFound}
	ErrInvalidOperation = Error{Code: InvalidOperation}
	ErrInvalidState     = Error{Code: InvalidState}
	ErrConflictRetry    = Error{Code: ConflictRetry}
	ErrUnavailable      = Error{Code: Unavailable}
)

type Error struct {
	Code    Code
	Message string

	cause error
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Wrap keeps err reachable through errors.Unwrap while reporting code to callers.
func Wrap(code Code, err error, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...), cause: err}
}

func (e Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// CodeOf returns the code of the first Error in err's chain, or Unknown.
func CodeOf(err error) Code {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
