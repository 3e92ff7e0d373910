package services

import (
	"context"
	"errors"

	"wms-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

// TOTPService manages two-factor enrollment and verification.
type TOTPService struct {
	users  *repositories.UserRepository
	issuer string
}

func NewTOTPService(users *repositories.UserRepository, issuer string) *TOTPService {
	return &TOTPService{users: users, issuer: issuer}
}

// Setup generates a fresh secret for the user and returns the otpauth URL
// for the authenticator app. 2FA stays off until Enable confirms a code.
func (s *TOTPService) Setup(ctx context.Context, userID int) (secret, url string, err error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", err
	}
	if err := s.users.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// Enable turns 2FA on once the user proves they hold the secret.
func (s *TOTPService) Enable(ctx context.Context, userID int, code string) error {
	secret, _, err := s.users.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("no pending 2FA setup; call setup first")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	return s.users.EnableTOTP(ctx, userID)
}

// Verify checks a login-time code for a 2FA-enrolled user.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, enabled, err := s.users.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled || secret == "" {
		return errors.New("2FA is not enabled for this account")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	return nil
}

// Disable requires a valid code so a stolen session cannot silently turn
// 2FA off.
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	if err := s.Verify(ctx, userID, code); err != nil {
		return err
	}
	return s.users.DisableTOTP(ctx, userID)
}
