package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/errs"
	"github.com/mirudeesh/liqueno-backend/internal/models"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

type otpStore interface {
	Replace(ctx context.Context, rec models.OTPVerification) error
	Consume(ctx context.Context, uid, code string, now time.Time) error
}

type mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

type otpService struct {
	store    otpStore
	mailer   mailer
	ttl      time.Duration
	clockNow func() time.Time
	generate func() (string, error)
}

func NewOTPService(store otpStore, mailer mailer, ttl time.Duration) *otpService {
	return &otpService{
		store:    store,
		mailer:   mailer,
		ttl:      ttl,
		clockNow: time.Now,
		generate: generateCode,
	}
}

// Send issues a fresh passcode for the authenticated user, replacing any
// prior one, and dispatches it by email.
func (s *otpService) Send(ctx context.Context, uid, email string) (dto.OTPSendResponse, error) {
	log := logger.FromContext(ctx)

	if uid == "" || email == "" {
		return dto.OTPSendResponse{}, errs.NewUnauthorizedError("authenticated user required")
	}

	code, err := s.generate()
	if err != nil {
		return dto.OTPSendResponse{}, err
	}

	now := s.clockNow()
	rec := models.OTPVerification{
		UserID:    uid,
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		Verified:  false,
		CreatedAt: now,
	}
	if err := s.store.Replace(ctx, rec); err != nil {
		return dto.OTPSendResponse{}, err
	}

	if err := s.mailer.Send(ctx, email, "Your Liqueno Verification Code", otpEmailHTML(code, now.Year())); err != nil {
		return dto.OTPSendResponse{}, err
	}

	log.Info("otp sent", "uid", uid)
	return dto.OTPSendResponse{Success: true, Message: "OTP sent to your email"}, nil
}

// Verify consumes a matching unexpired code. Non-6-digit input fails locally
// without touching the datastore. A miss reports a uniform "invalid or
// expired" failure that does not distinguish wrong-code from expired.
func (s *otpService) Verify(ctx context.Context, uid, code string) error {
	if !codePattern.MatchString(code) {
		return errs.NewValidationError("Code must be exactly 6 digits")
	}
	if uid == "" {
		return errs.NewUnauthorizedError("authenticated user required")
	}

	if err := s.store.Consume(ctx, uid, code, s.clockNow()); err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return errs.NewValidationError("Invalid or expired code")
		}
		return err
	}

	logger.FromContext(ctx).Info("otp verified", "uid", uid)
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpEmailHTML(code string, year int) string {
	return `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">` +
		`<h1 style="color: #333; text-align: center;">Verification Code</h1>` +
		`<p style="color: #666; font-size: 16px;">Hello,</p>` +
		`<p style="color: #666; font-size: 16px;">Your verification code for Liqueno is:</p>` +
		`<div style="background: linear-gradient(135deg, #000 0%, #333 100%); border-radius: 12px; padding: 30px; text-align: center; margin: 20px 0;">` +
		`<span style="font-size: 36px; font-weight: bold; color: #fff; letter-spacing: 8px;">` + code + `</span>` +
		`</div>` +
		`<p style="color: #666; font-size: 14px;">This code will expire in 10 minutes.</p>` +
		`<p style="color: #666; font-size: 14px;">If you didn't request this code, please ignore this email.</p>` +
		`<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">` +
		`<p style="color: #999; font-size: 12px; text-align: center;">&copy; ` + fmt.Sprint(year) + ` Liqueno. All rights reserved.</p>` +
		`</div>`
}
