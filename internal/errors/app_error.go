package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/areejrazzaq/shopping-cart/internal/models"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error

	// Shortages is populated on insufficient-stock failures so callers can
	// adjust quantities per product.
	Shortages []models.StockShortage
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthenticatedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, message, http.StatusUnauthorized)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusForbidden)
}

func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Your cart is empty", http.StatusBadRequest)
}

// InsufficientStockError reports every offending product at once so the
// caller can fix the whole cart in one pass.
func InsufficientStockError(shortages ...models.StockShortage) *AppError {
	e := NewAppError(ErrCodeInsufficientStock, "Insufficient stock for some products", http.StatusConflict)
	e.Shortages = shortages

	if len(shortages) == 1 {
		s := shortages[0]
		e.Detail = fmt.Sprintf("product %s: requested %d, available %d", s.ProductID, s.Requested, s.Available)
	}

	return e
}

func TransactionFailedError(message string) *AppError {
	return NewAppError(ErrCodeTransactionFailed, message, http.StatusInternalServerError)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
