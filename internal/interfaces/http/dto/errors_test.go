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
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeSyncInProgress, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeSyncInProgress, NormalizeErrorCode("SYNC_IN_PROGRESS"))
	assert.Equal(t, ErrCodeUpstreamUnavailable, NormalizeErrorCode("UPSTREAM_UNAVAILABLE"))

	// Already normalized or unknown codes pass through
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode(ErrCodeConflict))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestListRequestNormalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()

	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)
	assert.Equal(t, 0, r.Offset())

	r = ListRequest{Page: 3, PageSize: 10}
	r.Normalize()
	assert.Equal(t, 20, r.Offset())
	assert.Equal(t, 10, r.Limit())
}
