package auth

import (
	"github.com/pkg/errors"
	"github.com/pquerna/otp/totp"
)

// GenerateTotpSecret provisions a new TOTP secret for a user and
// returns the secret plus the otpauth:// URL for the enrollment QR.
func GenerateTotpSecret(issuer, account string) (secret string, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate totp secret")
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTotp checks a 6-digit passcode against the stored secret.
func ValidateTotp(passcode, secret string) bool {
	return totp.Validate(passcode, secret)
}
