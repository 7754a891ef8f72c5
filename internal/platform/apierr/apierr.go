package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuth          Kind = "auth"
	KindConflict      Kind = "conflict"
	KindConfiguration Kind = "configuration"
	KindGeneration    Kind = "generation"
	KindStore         Kind = "store"
)

type Error struct {
	Status int
	Code   string
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func newKind(kind Kind, status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Kind: kind, Err: err}
}

func Validation(code string, err error) *Error {
	return newKind(KindValidation, http.StatusBadRequest, code, err)
}

func NotFound(code string, err error) *Error {
	return newKind(KindNotFound, http.StatusNotFound, code, err)
}

func Auth(code string, err error) *Error {
	return newKind(KindAuth, http.StatusUnauthorized, code, err)
}

// Conflict is the auth-family error for a username that is already taken.
func Conflict(code string, err error) *Error {
	return newKind(KindConflict, http.StatusConflict, code, err)
}

func Configuration(code string, err error) *Error {
	return newKind(KindConfiguration, http.StatusInternalServerError, code, err)
}

func Generation(code string, err error) *Error {
	return newKind(KindGeneration, http.StatusBadGateway, code, err)
}

func Store(code string, err error) *Error {
	return newKind(KindStore, http.StatusInternalServerError, code, err)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}
