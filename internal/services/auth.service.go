package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetTotp(ctx context.Context, id int64, secret string, enabled bool) error
}

type AuthService struct {
	users      UserRepository
	tokens     *auth.TokenIssuer
	totpIssuer string
}

func NewAuthService(users UserRepository, tokens *auth.TokenIssuer, totpIssuer string) *AuthService {
	return &AuthService{users: users, tokens: tokens, totpIssuer: totpIssuer}
}

// Login verifies the password (and the TOTP passcode when the account
// has it enabled) and returns a signed session token. Failures are
// deliberately indistinguishable between unknown user and bad
// password.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrLoginGagal
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrLoginGagal
	}

	if user.TotpEnabled {
		if req.Passcode == "" {
			return nil, ErrPasscodeWajib
		}
		if !auth.ValidateTotp(req.Passcode, user.TotpSecret) {
			return nil, ErrPasscodeSalah
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: user}, nil
}

// Register creates a user with a bcrypt password hash. Admin only,
// enforced at the route level.
func (s *AuthService) Register(ctx context.Context, username, nama, password string, role model.Role) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidAmount
	}
	if role != model.RoleAdmin && role != model.RoleKasir {
		return nil, ErrStatusSalah
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Nama:         nama,
		PasswordHash: string(hash),
		Role:         role,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

// EnableTotp provisions a secret for the user and stores it disabled.
// The caller must confirm a passcode via ConfirmTotp before login
// starts requiring it.
func (s *AuthService) EnableTotp(ctx context.Context, userID int64) (url string, err error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", mapRepoErr(err)
	}
	secret, url, err := auth.GenerateTotpSecret(s.totpIssuer, user.Username)
	if err != nil {
		return "", err
	}
	if err := s.users.SetTotp(ctx, user.ID, secret, false); err != nil {
		return "", mapRepoErr(err)
	}
	return url, nil
}

// ConfirmTotp validates the first passcode against the pending secret
// and switches enforcement on.
func (s *AuthService) ConfirmTotp(ctx context.Context, userID int64, passcode string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return mapRepoErr(err)
	}
	if user.TotpSecret == "" {
		return ErrStatusSalah
	}
	if !auth.ValidateTotp(passcode, user.TotpSecret) {
		return ErrPasscodeSalah
	}
	return s.users.SetTotp(ctx, user.ID, user.TotpSecret, true)
}
