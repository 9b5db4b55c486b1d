package services

import (
	"errors"
	"fmt"
)

// Kind classifies service failures so the transport layer can map them to
// status codes without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindAlreadyExists
	KindConstraintViolation
	KindIngestFailure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func invalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func alreadyExists(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func constraintViolation(message string, err error) *Error {
	return &Error{Kind: KindConstraintViolation, Message: message, Err: err}
}

// NewIngestFailure marks a batch input file as structurally unreadable. It is
// exported for the tabular readers that sit outside this package.
func NewIngestFailure(message string, err error) *Error {
	return &Error{Kind: KindIngestFailure, Message: message, Err: err}
}

// KindOf returns the classification of err, or KindUnknown for errors that
// did not originate in the service layer.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}
