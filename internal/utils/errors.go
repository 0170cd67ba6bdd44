package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound       = errors.New("PRODUCT_NOT_FOUND")
	ErrStorageOptionNotFound = errors.New("STORAGE_OPTION_NOT_FOUND")
	ErrCartItemNotFound      = errors.New("CART_ITEM_NOT_FOUND")
	ErrOrderNotFound         = errors.New("ORDER_NOT_FOUND")
	ErrOverrideNotFound      = errors.New("PRICE_OVERRIDE_NOT_FOUND")
	ErrInvalidPIN            = errors.New("INVALID_PIN")
	ErrInvalidQuantity       = errors.New("INVALID_QUANTITY")
	ErrInvalidPaymentType    = errors.New("INVALID_PAYMENT_TYPE")
	ErrDuplicateProduct      = errors.New("DUPLICATE_PRODUCT")
)

// ValidationError carries per-field messages for 400 responses.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "VALIDATION_FAILED" }

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
