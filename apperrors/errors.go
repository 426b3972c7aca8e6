// Package apperrors defines the API's error taxonomy. Every domain
// failure is an *Error carrying a machine-readable kind and the HTTP
// status it maps to; handlers funnel everything through Respond.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindAuthentication    Kind = "AUTHENTICATION_ERROR"
	KindAuthorization     Kind = "AUTHORIZATION_ERROR"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindInternal          Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]interface{} // extra payload, e.g. stock details
	Err     error                  // wrapped cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusForbidden, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

// InsufficientStock reports a failed stock check. The response carries
// the product and both quantities so the client can adjust the cart.
func InsufficientStock(productID uint, productName string, available, requested int) *Error {
	return &Error{
		Kind:   KindInsufficientStock,
		Status: http.StatusConflict,
		Message: fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
			productName, available, requested),
		Fields: map[string]interface{}{
			"productId":   productID,
			"productName": productName,
			"available":   available,
			"requested":   requested,
		},
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// Respond writes err as the standard JSON error body
// {"error": kind, "message": ...} plus any extra fields. Unexpected
// errors become a 500 whose cause is only echoed in debug mode.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	body := gin.H{
		"error":   string(appErr.Kind),
		"message": appErr.Message,
	}
	for k, v := range appErr.Fields {
		body[k] = v
	}
	if appErr.Kind == KindInternal && appErr.Err != nil && gin.IsDebugging() {
		body["detail"] = appErr.Err.Error()
	}

	c.JSON(appErr.Status, body)
}
