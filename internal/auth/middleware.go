package auth

import (
	"strings"

	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

const principalKey = "auth.principal"

// Middleware rejects requests without a valid bearer token and stores
// the resolved principal on the request context. Paths in skip are
// served without authentication.
func Middleware(issuer *TokenIssuer, skip ...string) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			path := string(ctx.Path())
			for _, p := range skip {
				if path == p {
					next(ctx)
					return
				}
			}
			raw := bearerToken(ctx)
			if raw == "" {
				unauthorized(ctx)
				return
			}
			principal, err := issuer.Verify(raw)
			if err != nil {
				unauthorized(ctx)
				return
			}
			ctx.SetUserValue(principalKey, principal)
			next(ctx)
		}
	}
}

// RequireAdmin guards mutating back-office routes. It must run after
// Middleware.
func RequireAdmin(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		p := PrincipalFrom(ctx)
		if p == nil || !p.IsAdmin() {
			ctx.SetStatusCode(xhttp.StatusForbidden)
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"error":"akses ditolak"}`)
			return
		}
		next(ctx)
	}
}

// PrincipalFrom returns the authenticated principal, or nil when the
// request did not pass the auth middleware.
func PrincipalFrom(ctx *xhttp.RequestCtx) *model.Principal {
	p, _ := ctx.UserValue(principalKey).(*model.Principal)
	return p
}

func bearerToken(ctx *xhttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(ctx *xhttp.RequestCtx) {
	ctx.SetStatusCode(xhttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"error":"autentikasi diperlukan"}`)
}
