package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeInvalidCredentials is used when login fails
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeDuplicate is used when trying to create a duplicate resource
	ErrCodeDuplicate = "ERR_DUPLICATE"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrentModification is used when optimistic locking fails
	ErrCodeConcurrentModification = "ERR_CONCURRENT_MODIFICATION"
	// ErrCodeDuplicateRequest is used when an idempotency key is replayed
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInsufficientStock is used when an order cannot be fulfilled
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeAmountMismatch is used when a payment does not settle the invoice exactly
	ErrCodeAmountMismatch = "ERR_AMOUNT_MISMATCH"
	// ErrCodeAlreadyPaid is used when an invoice already has a payment
	ErrCodeAlreadyPaid = "ERR_ALREADY_PAID"
	// ErrCodeMissingReference is used when a non-cash payment lacks a reference
	ErrCodeMissingReference = "ERR_MISSING_REFERENCE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:               http.StatusNotFound,
	ErrCodeDuplicate:              http.StatusConflict,
	ErrCodeConflict:               http.StatusConflict,
	ErrCodeConcurrentModification: http.StatusConflict,
	ErrCodeDuplicateRequest:       http.StatusConflict,

	// Business rule errors
	ErrCodeInvalidState:      http.StatusConflict,
	ErrCodeAlreadyPaid:       http.StatusConflict,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeAmountMismatch:    http.StatusBadRequest,
	ErrCodeMissingReference:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the HTTP-facing codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeDuplicate,
	"DUPLICATE_SKU":        ErrCodeDuplicate,
	"DUPLICATE_USERNAME":   ErrCodeDuplicate,
	"DUPLICATE_LINE":       ErrCodeValidation,
	"DUPLICATE_REQUEST":    ErrCodeDuplicateRequest,
	"EMPTY_ORDER":          ErrCodeValidation,
	"INVALID_STATE":        ErrCodeInvalidState,
	"ALREADY_PAID":         ErrCodeAlreadyPaid,
	"AMOUNT_MISMATCH":      ErrCodeAmountMismatch,
	"MISSING_REFERENCE":    ErrCodeMissingReference,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"VERSION_CONFLICT":     ErrCodeConcurrentModification,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrentModification,
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_QUANTITY":     ErrCodeValidation,
	"INVALID_PRICE":        ErrCodeValidation,
	"INVALID_SKU":          ErrCodeValidation,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_AMOUNT":       ErrCodeValidation,
	"INVALID_METHOD":       ErrCodeValidation,
	"INVALID_EMAIL":        ErrCodeValidation,
	"INVALID_USERNAME":     ErrCodeValidation,
	"INVALID_PASSWORD":     ErrCodeValidation,
	"WEAK_PASSWORD":        ErrCodeValidation,
	"INVALID_CLIENT":       ErrCodeValidation,
	"INVALID_PRODUCT":      ErrCodeValidation,
	"INVALID_INVOICE":      ErrCodeValidation,
	"INVALID_PAYMENT":      ErrCodeValidation,
	"INVALID_NUMBER":       ErrCodeValidation,
	"UNKNOWN_PRODUCT":      ErrCodeValidation,
	"PASSWORD_HASH_ERROR":  ErrCodeInternal,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the HTTP-facing format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
