package auth

import (
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)

	token, err := issuer.Issue(&model.User{ID: 7, Nama: "Admin", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.UserID)
	assert.Equal(t, model.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Role: model.RoleKasir})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", -time.Minute)

	token, err := issuer.Issue(&model.User{ID: 1, Role: model.RoleKasir})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
