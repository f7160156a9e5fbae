package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	xhttp "github.com/awsembako/backoffice/pkg/http"
)

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, username, nama, password string, role model.Role) (*model.User, error)
	EnableTotp(ctx context.Context, userID int64) (string, error)
	ConfirmTotp(ctx context.Context, userID int64, passcode string) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterAuthRoutes mounts login plus user management. Login itself
// is exempted from the token middleware by path.
func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/auth/login", h.Login)
	e.POST("/auth/register", auth.RequireAdmin(h.Register))
	e.POST("/auth/totp/enable", h.EnableTotp)
	e.POST("/auth/totp/confirm", h.ConfirmTotp)
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req model.LoginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	resp, err := h.svc.Login(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}

type registerRequest struct {
	Username string     `json:"username"`
	Nama     string     `json:"nama"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	var req registerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	user, err := h.svc.Register(ctx, req.Username, req.Nama, req.Password, req.Role)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, user)
}

func (h *AuthHandler) EnableTotp(ctx *xhttp.RequestCtx) {
	p := auth.PrincipalFrom(ctx)
	if p == nil {
		writeError(ctx, xhttp.StatusUnauthorized, "autentikasi diperlukan")
		return
	}
	url, err := h.svc.EnableTotp(ctx, p.UserID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"otpauth_url": url})
}

type confirmTotpRequest struct {
	Passcode string `json:"passcode"`
}

func (h *AuthHandler) ConfirmTotp(ctx *xhttp.RequestCtx) {
	p := auth.PrincipalFrom(ctx)
	if p == nil {
		writeError(ctx, xhttp.StatusUnauthorized, "autentikasi diperlukan")
		return
	}
	var req confirmTotpRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.ConfirmTotp(ctx, p.UserID, req.Passcode); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]bool{"totp_enabled": true})
}
