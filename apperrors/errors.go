// Package apperrors defines the per-request error taxonomy shared by the
// store, the lifecycle manager, and the HTTP layer. Every error maps to an
// HTTP status; none is fatal to the process.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation_failure"
	KindCouponRejected    Kind = "coupon_rejected"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict_assignment"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
)

// Error is an application error with an HTTP status code.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound signals a missing referenced entity.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Code: http.StatusNotFound, Message: what + " not found"}
}

// Validation signals malformed input or a client/server price mismatch.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Message: msg}
}

// CouponRejected surfaces a validator rejection with its specific reason.
func CouponRejected(reason, msg string) *Error {
	return &Error{Kind: KindCouponRejected, Code: http.StatusUnprocessableEntity, Message: msg, Reason: reason}
}

// InvalidTransition signals a status change that breaks the state machine.
func InvalidTransition(msg string) *Error {
	return &Error{Kind: KindInvalidTransition, Code: http.StatusUnprocessableEntity, Message: msg}
}

// Conflict signals a lost partner-assignment race.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Code: http.StatusConflict, Message: msg}
}

// Forbidden signals an ownership or role violation.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Code: http.StatusForbidden, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// Respond writes an error as JSON, mapping unknown errors to 500.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	body := gin.H{"error": appErr.Message, "kind": appErr.Kind}
	if appErr.Reason != "" {
		body["reason"] = appErr.Reason
	}
	c.JSON(appErr.Code, body)
}
