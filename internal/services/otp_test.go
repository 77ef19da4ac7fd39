package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/errs"
	"github.com/mirudeesh/liqueno-backend/internal/models"
)

type fakeOTPStore struct {
	replaced   []models.OTPVerification
	replaceErr error

	consumeCalls int
	consumeUID   string
	consumeCode  string
	consumeErr   error
}

func (f *fakeOTPStore) Replace(ctx context.Context, rec models.OTPVerification) error {
	f.replaced = append(f.replaced, rec)
	return f.replaceErr
}

func (f *fakeOTPStore) Consume(ctx context.Context, uid, code string, now time.Time) error {
	f.consumeCalls++
	f.consumeUID = uid
	f.consumeCode = code
	return f.consumeErr
}

type fakeMailer struct {
	to      string
	subject string
	html    string
	err     error
	calls   int
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.html = html
	return f.err
}

func newTestOTPService(store *fakeOTPStore, mail *fakeMailer) *otpService {
	svc := NewOTPService(store, mail, 10*time.Minute)
	svc.clockNow = fixedClock
	svc.generate = func() (string, error) { return "123456", nil }
	return svc
}

func TestOTPSendStoresAndMails(t *testing.T) {
	store := &fakeOTPStore{}
	mail := &fakeMailer{}
	svc := newTestOTPService(store, mail)

	resp, err := svc.Send(context.Background(), "uid-1", "user@example.com")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success response: %+v", resp)
	}

	if len(store.replaced) != 1 {
		t.Fatalf("expected one stored record, got %d", len(store.replaced))
	}
	rec := store.replaced[0]
	if rec.UserID != "uid-1" || rec.Email != "user@example.com" || rec.Code != "123456" {
		t.Fatalf("stored record mismatch: %+v", rec)
	}
	if rec.Verified {
		t.Fatalf("fresh code must not be verified")
	}
	if !rec.ExpiresAt.Equal(fixedClock().Add(10 * time.Minute)) {
		t.Fatalf("expiry mismatch: %v", rec.ExpiresAt)
	}

	if mail.calls != 1 || mail.to != "user@example.com" {
		t.Fatalf("mailer not called with recipient: %+v", mail)
	}
	if !strings.Contains(mail.html, "123456") {
		t.Fatalf("email body missing code")
	}
}

func TestOTPSendRequiresIdentity(t *testing.T) {
	svc := newTestOTPService(&fakeOTPStore{}, &fakeMailer{})

	_, err := svc.Send(context.Background(), "", "user@example.com")
	var unauthorized *errs.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestOTPSendStoreFailure(t *testing.T) {
	store := &fakeOTPStore{replaceErr: errs.NewDatabaseError("replace otp", "firestore down", errors.New("boom"))}
	mail := &fakeMailer{}
	svc := newTestOTPService(store, mail)

	_, err := svc.Send(context.Background(), "uid-1", "user@example.com")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
	if mail.calls != 0 {
		t.Fatalf("no email should be sent when the store fails")
	}
}

func TestOTPVerifyNonSixDigitFailsLocally(t *testing.T) {
	store := &fakeOTPStore{}
	svc := newTestOTPService(store, &fakeMailer{})

	for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
		err := svc.Verify(context.Background(), "uid-1", code)
		var valErr *errs.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("code %q: expected ValidationError, got %v", code, err)
		}
	}
	if store.consumeCalls != 0 {
		t.Fatalf("malformed codes must not reach the store, got %d calls", store.consumeCalls)
	}
}

func TestOTPVerifySuccess(t *testing.T) {
	store := &fakeOTPStore{}
	svc := newTestOTPService(store, &fakeMailer{})

	if err := svc.Verify(context.Background(), "uid-1", "123456"); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if store.consumeCalls != 1 || store.consumeUID != "uid-1" || store.consumeCode != "123456" {
		t.Fatalf("store not consumed with expected args: %+v", store)
	}
}

func TestOTPVerifyMissReportsUniformFailure(t *testing.T) {
	store := &fakeOTPStore{consumeErr: errs.NewNotFoundError("no matching code")}
	svc := newTestOTPService(store, &fakeMailer{})

	err := svc.Verify(context.Background(), "uid-1", "654321")
	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Message != "Invalid or expired code" {
		t.Fatalf("miss must not distinguish wrong from expired: %q", valErr.Message)
	}
}

func TestOTPVerifyInfraErrorPassesThrough(t *testing.T) {
	store := &fakeOTPStore{consumeErr: errs.NewDatabaseError("consume otp", "transaction failed", errors.New("boom"))}
	svc := newTestOTPService(store, &fakeMailer{})

	err := svc.Verify(context.Background(), "uid-1", "123456")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}
