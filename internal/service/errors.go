package service

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	// KindNotFound: attempt, quiz, question or user is absent.
	KindNotFound
	// KindInvalidState: the operation is not valid given current progress,
	// such as answering a non-current question.
	KindInvalidState
	// KindValidation: missing or malformed required input.
	KindValidation
)

// Error is the structured error surfaced to the request-handling layer, which
// owns the mapping to HTTP status codes.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies err, defaulting to KindInternal for anything untyped.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
