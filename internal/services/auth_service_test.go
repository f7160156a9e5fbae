package services

import (
	"context"
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (*AuthService, *pgFixture) {
	f := setupFixture(t)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(f.users, tokens, "aw-sembako-test"), f
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "kasir1", "Kasir Satu", "rahasia123", model.RoleKasir)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", user.PasswordHash)

	resp, err := svc.Login(ctx, model.LoginRequest{Username: "kasir1", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleKasir, resp.User.Role)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "kasir1", Password: "salah"})
	assert.ErrorIs(t, err, ErrLoginGagal)

	// Unknown user fails the same way as a bad password.
	_, err = svc.Login(ctx, model.LoginRequest{Username: "hantu", Password: "rahasia123"})
	assert.ErrorIs(t, err, ErrLoginGagal)
}

func TestAuth_RegisterValidation(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "X", "pw", model.RoleKasir)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Register(ctx, "x", "X", "", model.RoleKasir)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Register(ctx, "x", "X", "pw", "SUPERVISOR")
	assert.ErrorIs(t, err, ErrStatusSalah)
}

func TestAuth_TotpLifecycle(t *testing.T) {
	svc, f := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "admin1", "Admin", "rahasia123", model.RoleAdmin)
	require.NoError(t, err)

	url, err := svc.EnableTotp(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "otpauth://")

	// Provisioned but unconfirmed: login still works without passcode.
	_, err = svc.Login(ctx, model.LoginRequest{Username: "admin1", Password: "rahasia123"})
	require.NoError(t, err)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.TotpSecret)

	err = svc.ConfirmTotp(ctx, user.ID, "000000")
	assert.ErrorIs(t, err, ErrPasscodeSalah)

	passcode, err := totp.GenerateCode(stored.TotpSecret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmTotp(ctx, user.ID, passcode))

	// Now the passcode is mandatory.
	_, err = svc.Login(ctx, model.LoginRequest{Username: "admin1", Password: "rahasia123"})
	assert.ErrorIs(t, err, ErrPasscodeWajib)

	passcode, err = totp.GenerateCode(stored.TotpSecret, time.Now())
	require.NoError(t, err)
	resp, err := svc.Login(ctx, model.LoginRequest{Username: "admin1", Password: "rahasia123", Passcode: passcode})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuth_ConfirmTotpWithoutProvisioning(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "kasir2", "Kasir", "rahasia123", model.RoleKasir)
	require.NoError(t, err)

	err = svc.ConfirmTotp(ctx, user.ID, "123456")
	assert.ErrorIs(t, err, ErrStatusSalah)
}
