package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeTokenInvalid, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicate, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeConcurrentModification, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusConflict},
		{ErrCodeAlreadyPaid, http.StatusConflict},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeAmountMismatch, http.StatusBadRequest},
		{ErrCodeMissingReference, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Domain codes are translated to the HTTP-facing format
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeDuplicate},
		{"DUPLICATE_SKU", ErrCodeDuplicate},
		{"DUPLICATE_USERNAME", ErrCodeDuplicate},
		{"DUPLICATE_REQUEST", ErrCodeDuplicateRequest},
		{"EMPTY_ORDER", ErrCodeValidation},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"ALREADY_PAID", ErrCodeAlreadyPaid},
		{"AMOUNT_MISMATCH", ErrCodeAmountMismatch},
		{"MISSING_REFERENCE", ErrCodeMissingReference},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"VERSION_CONFLICT", ErrCodeConcurrentModification},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"INVALID_QUANTITY", ErrCodeValidation},
		{"UNKNOWN_PRODUCT", ErrCodeValidation},
		{"WEAK_PASSWORD", ErrCodeValidation},
		{"INTERNAL_ERROR", ErrCodeInternal},
		// HTTP-facing codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeValidation, ErrCodeValidation},
		// Unknown codes pass through unchanged
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainErrorCodesResolveToKnownStatuses(t *testing.T) {
	// Every domain code must normalize to a code with an explicit HTTP status
	for domainCode, httpCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[httpCode]
		assert.True(t, ok, "domain code %s maps to %s which has no HTTP status", domainCode, httpCode)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	details := []map[string]interface{}{
		{"product_id": "p1", "shortfall": 3},
	}
	resp := NewErrorResponseWithDetails(ErrCodeInsufficientStock, "Order cannot be fulfilled", "req-1", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeInsufficientStock, resp.Error.Code)
	assert.Equal(t, details, resp.Error.Details)
}
