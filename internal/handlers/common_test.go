package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/services"
	xhttp "github.com/awsembako/backoffice/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, xhttp.StatusNotFound},
		{services.ErrSudahAbsen, xhttp.StatusConflict},
		{services.ErrLockTimeout, xhttp.StatusServiceUnavailable},
		{services.ErrLoginGagal, xhttp.StatusUnauthorized},
		{services.ErrPasscodeSalah, xhttp.StatusUnauthorized},
		{services.ErrPasscodeWajib, xhttp.StatusUnauthorized},
		{services.ErrInactive, xhttp.StatusBadRequest},
		{services.ErrInvalidAmount, xhttp.StatusBadRequest},
		{services.ErrSaldoNegatif, xhttp.StatusBadRequest},
		{services.ErrStokKurang, xhttp.StatusBadRequest},
		{services.ErrBayarKurang, xhttp.StatusBadRequest},
		{services.ErrItemKosong, xhttp.StatusBadRequest},
		{services.ErrCustomerWajib, xhttp.StatusBadRequest},
		{services.ErrStatusSalah, xhttp.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			ctx := &fasthttp.RequestCtx{}
			writeServiceError(ctx, tc.err)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			assert.Contains(t, string(ctx.Response.Body()), tc.err.Error())
		})
	}
}

func TestWriteServiceError_UnknownErrorIsOpaque(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	writeServiceError(ctx, errors.New("pq: connection refused"))
	assert.Equal(t, xhttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.NotContains(t, string(ctx.Response.Body()), "connection refused")
}

func TestPathInt64(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "42")

	id, err := pathInt64(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	ctx.SetUserValue("id", "abc")
	_, err = pathInt64(ctx, "id")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = parseTime("2025-01-31T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = parseTime("31/01/2025")
	assert.Error(t, err)
}
