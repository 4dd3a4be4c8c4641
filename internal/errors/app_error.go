package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Fields     map[string]string
	Err        error
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

// per-field validation messages keyed by field name.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeOutOfStock         = "OUT_OF_STOCK"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeUnknownPromoCode   = "UNKNOWN_PROMO_CODE"
	ErrCodeBelowMinimumAmount = "BELOW_MINIMUM_AMOUNT"
	ErrCodeCheckoutState      = "CHECKOUT_STATE"
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

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func OutOfStockError(message string) *AppError {
	return NewAppError(ErrCodeOutOfStock, message, http.StatusConflict)
}

func GatewayUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeGatewayUnavailable, message, http.StatusBadGateway)
}

func UnknownPromoCodeError(message string) *AppError {
	return NewAppError(ErrCodeUnknownPromoCode, message, http.StatusUnprocessableEntity)
}

func BelowMinimumAmountError(message string) *AppError {
	return NewAppError(ErrCodeBelowMinimumAmount, message, http.StatusUnprocessableEntity)
}

func CheckoutStateError(message string) *AppError {
	return NewAppError(ErrCodeCheckoutState, message, http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
