package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	h := &BaseHandler{}
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		h.HandleDomainError(c, err)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectStatus int
		expectCode   string
	}{
		{
			name:         "not found",
			err:          shared.NewDomainError("NOT_FOUND", "Order not found"),
			expectStatus: http.StatusNotFound,
			expectCode:   dto.ErrCodeNotFound,
		},
		{
			name:         "insufficient stock",
			err:          shared.NewDomainError("INSUFFICIENT_STOCK", "Order cannot be fulfilled"),
			expectStatus: http.StatusUnprocessableEntity,
			expectCode:   dto.ErrCodeInsufficientStock,
		},
		{
			name:         "already paid",
			err:          shared.NewDomainError("ALREADY_PAID", "Invoice already settled"),
			expectStatus: http.StatusConflict,
			expectCode:   dto.ErrCodeAlreadyPaid,
		},
		{
			name:         "amount mismatch",
			err:          shared.NewDomainError("AMOUNT_MISMATCH", "Payment must match invoice total"),
			expectStatus: http.StatusBadRequest,
			expectCode:   dto.ErrCodeAmountMismatch,
		},
		{
			name:         "invalid state",
			err:          shared.NewDomainError("INVALID_STATE", "Order is not in PLACED status"),
			expectStatus: http.StatusConflict,
			expectCode:   dto.ErrCodeInvalidState,
		},
		{
			name:         "validation",
			err:          shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"),
			expectStatus: http.StatusBadRequest,
			expectCode:   dto.ErrCodeValidation,
		},
		{
			name:         "unexpected error",
			err:          errors.New("database exploded"),
			expectStatus: http.StatusInternalServerError,
			expectCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveError(t, tt.err)

			assert.Equal(t, tt.expectStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectCode, resp.Error.Code)
		})
	}
}

func TestHandleDomainError_DetailsRideAlong(t *testing.T) {
	err := shared.NewDomainError("INSUFFICIENT_STOCK", "Order cannot be fulfilled").
		WithDetails([]map[string]interface{}{
			{"product_id": "p1", "requested": 5, "available": 2, "shortfall": 3},
		})

	rec := serveError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	require.NotNil(t, resp.Error.Details)

	details, ok := resp.Error.Details.([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	line, ok := details[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), line["shortfall"])
}

func TestHandleDomainError_InternalHidesCause(t *testing.T) {
	rec := serveError(t, errors.New("pq: connection refused"))

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "pq:")
}

func TestParseIDParam(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/items/0f8fad5b-d9cb-469f-a165-70867728950e", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
