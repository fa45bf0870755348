package apperr

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/pkg"
)

// Error kinds, matched with errors.Is.
var (
	ErrAuthentication = errors.New("authentication required")
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrStore          = errors.New("store failure")
)

// Error carries a kind, a public message and an optional internal cause.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func (e *Error) Kind() error {
	return e.kind
}

func Validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// Validation wraps a parse or validator error, exposing its text.
func Validation(err error) error {
	return &Error{kind: ErrValidation, msg: err.Error()}
}

func NotFound(what string) error {
	return &Error{kind: ErrNotFound, msg: what + " not found"}
}

func Conflict(msg string, cause error) error {
	return &Error{kind: ErrConflict, msg: msg, cause: cause}
}

func Authentication(cause error) error {
	return &Error{kind: ErrAuthentication, msg: ErrAuthentication.Error(), cause: cause}
}

// Store wraps an unexpected datastore error. Unique violations become conflicts.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if pkg.IsUniqueViolationError(err) {
		return &Error{kind: ErrConflict, msg: "already exists", cause: fmt.Errorf("%s: %w", op, err)}
	}
	return &Error{kind: ErrStore, msg: "internal error", cause: fmt.Errorf("%s: %w", op, err)}
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show to a client.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.kind == ErrStore {
			return "internal error"
		}
		return appErr.msg
	}
	return "internal error"
}

// WriteHTTP logs err and answers with its status and public message.
func WriteHTTP(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}
	http.Error(w, PublicMessage(err), status)
}
