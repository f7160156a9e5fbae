package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/awsembako/backoffice/internal/services"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type listEnvelope[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status
// codes. Unknown errors become an opaque 500.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSudahAbsen):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	case errors.Is(err, services.ErrLockTimeout):
		writeError(ctx, xhttp.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrLoginGagal),
		errors.Is(err, services.ErrPasscodeSalah),
		errors.Is(err, services.ErrPasscodeWajib):
		writeError(ctx, xhttp.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInactive),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSaldoNegatif),
		errors.Is(err, services.ErrStokKurang),
		errors.Is(err, services.ErrBayarKurang),
		errors.Is(err, services.ErrItemKosong),
		errors.Is(err, services.ErrCustomerWajib),
		errors.Is(err, services.ErrStatusSalah):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	default:
		writeError(ctx, xhttp.StatusInternalServerError, "terjadi kesalahan internal")
	}
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(v, 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) (int, bool) {
	v := query(ctx, key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
