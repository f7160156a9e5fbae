package model

import "time"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleKasir Role = "KASIR"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Nama         string    `json:"nama"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TotpSecret   string    `json:"-"`
	TotpEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated caller resolved by the auth
// middleware. Handlers never inspect transport credentials directly.
type Principal struct {
	UserID int64
	Nama   string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Passcode string `json:"passcode"` // TOTP, required when enabled
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
