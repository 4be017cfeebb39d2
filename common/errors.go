package common

import (
	"errors"
	"net/http"
	"strings"
)

// Error kinds. Every failure a component returns is tagged with exactly one
// of these so the API layer can pick a status code and message.
var (
	ErrInvalidReference   = errors.New("invalid reference")
	ErrValidation         = errors.New("validation error")
	ErrUpstreamFetch      = errors.New("upstream fetch error")
	ErrUpstreamGeneration = errors.New("upstream generation error")
	ErrRender             = errors.New("render error")
	ErrDelivery           = errors.New("delivery error")
)

// Error tags an underlying failure with a kind and the operation that failed.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if op := strings.TrimSpace(e.Op); op != "" {
		parts = append(parts, op)
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "unknown failure"
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap builds a tagged error. A nil kind is treated as an internal failure
// and tagged ErrRender.
func Wrap(kind error, op string, err error) error {
	if kind == nil {
		kind = ErrRender
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// New is Wrap with a plain message as the cause.
func New(kind error, op, message string) error {
	return Wrap(kind, op, errors.New(message))
}

// Detail returns the innermost cause message carried by a tagged error, which
// for upstream failures is the provider's own message. Untagged errors return
// their full string.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Err != nil {
		return Detail(tagged.Err)
	}
	return err.Error()
}

// IsCallerError reports whether err was caused by bad caller input.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidReference) || errors.Is(err, ErrValidation)
}

// HTTPStatus maps an error kind to the response status: caller input problems
// are 400, everything else is 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsCallerError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
