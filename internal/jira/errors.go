package jira

import (
	"errors"
	"fmt"
)

// Kind classifies a failed exchange.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindAPI
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Messages shown to the user for transport and auth failures.
const (
	MsgNetwork = "Network Error"
	MsgAuth    = "You must be logged in to JIRA to see this project."
)

// Error is the single error type surfaced by the client and the popup flows.
// Message is meant for display; Err keeps the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so errors.Is(err, &Error{Kind: KindAuth}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

func AuthError() *Error {
	return &Error{Kind: KindAuth, Message: MsgAuth}
}

func APIError(msg string) *Error {
	return &Error{Kind: KindAPI, Message: msg}
}

func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
