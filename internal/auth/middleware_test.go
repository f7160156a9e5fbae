package auth

import (
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func requestTo(path string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(path)
	return ctx
}

func TestMiddleware_SkipPaths(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	called := false
	handler := Middleware(issuer, "/api/v1/auth/login")(func(ctx *xhttp.RequestCtx) {
		called = true
	})

	ctx := requestTo("/api/v1/auth/login")
	handler(ctx)
	assert.True(t, called)
}

func TestMiddleware_MissingToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	handler := Middleware(issuer)(func(ctx *xhttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := requestTo("/api/v1/barang")
	handler(ctx)
	assert.Equal(t, xhttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	handler := Middleware(issuer)(func(ctx *xhttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := requestTo("/api/v1/barang")
	ctx.Request.Header.Set("Authorization", "Basic abc123")
	handler(ctx)
	assert.Equal(t, xhttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestMiddleware_ValidTokenSetsPrincipal(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(&model.User{ID: 3, Nama: "Kasir", Role: model.RoleKasir})
	require.NoError(t, err)

	var got *model.Principal
	handler := Middleware(issuer)(func(ctx *xhttp.RequestCtx) {
		got = PrincipalFrom(ctx)
	})

	ctx := requestTo("/api/v1/barang")
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	handler(ctx)

	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, model.RoleKasir, got.Role)
}

func TestRequireAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(func(ctx *xhttp.RequestCtx) {
		called = true
	})

	// No principal at all.
	ctx := requestTo("/api/v1/barang")
	handler(ctx)
	assert.Equal(t, xhttp.StatusForbidden, ctx.Response.StatusCode())
	assert.False(t, called)

	// Kasir is not enough.
	ctx = requestTo("/api/v1/barang")
	ctx.SetUserValue(principalKey, &model.Principal{UserID: 1, Role: model.RoleKasir})
	handler(ctx)
	assert.Equal(t, xhttp.StatusForbidden, ctx.Response.StatusCode())
	assert.False(t, called)

	ctx = requestTo("/api/v1/barang")
	ctx.SetUserValue(principalKey, &model.Principal{UserID: 1, Role: model.RoleAdmin})
	handler(ctx)
	assert.True(t, called)
}
