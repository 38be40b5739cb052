package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"github.com/ArowuTest/estatehub-backend/internal/utils"
	"github.com/ArowuTest/estatehub-backend/pkg/mailer"
)

// Compile-time check to ensure OTPServiceImpl implements OTPService
var _ OTPService = (*OTPServiceImpl)(nil)

// OTPServiceImpl mails one-time codes and verifies them against the OTP store
type OTPServiceImpl struct {
	store    repositories.OTPStore
	userRepo repositories.UserRepository
	mailer   mailer.Mailer
	ttl      time.Duration
	length   int
}

// NewOTPService creates a new OTPServiceImpl
func NewOTPService(store repositories.OTPStore, userRepo repositories.UserRepository, m mailer.Mailer, ttl time.Duration, length int) *OTPServiceImpl {
	return &OTPServiceImpl{
		store:    store,
		userRepo: userRepo,
		mailer:   m,
		ttl:      ttl,
		length:   length,
	}
}

// Send generates a code for email, stores it and mails it. A new code replaces the previous one.
func (s *OTPServiceImpl) Send(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code, err := utils.GenerateNumericCode(s.length)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	if err := s.store.Save(ctx, email, code, s.ttl); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	body := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>", code, int(s.ttl.Minutes()))
	if err := s.mailer.Send(email, "Your verification code", body); err != nil {
		_ = s.store.Delete(ctx, email)
		return fmt.Errorf("failed to send code: %w", err)
	}
	slog.Info("Verification code sent", "email", email)
	return nil
}

// Verify checks code against the stored one. A matching code is consumed and the
// account with that email, if any, is marked verified.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	stored, err := s.store.Get(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrInvalidOTP
	}

	if err := s.store.Delete(ctx, email); err != nil {
		slog.Warn("Failed to delete used verification code", "error", err, "email", email)
	}
	if err := s.userRepo.MarkVerified(ctx, email); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}
