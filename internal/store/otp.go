package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/mirudeesh/liqueno-backend/internal/crypto"
	"github.com/mirudeesh/liqueno-backend/internal/errs"
	"github.com/mirudeesh/liqueno-backend/internal/models"
)

type otpStore struct {
	client *firestore.Client
	cipher crypto.Cipher
}

func NewOTPStore(client *firestore.Client, cipher crypto.Cipher) *otpStore {
	return &otpStore{client: client, cipher: cipher}
}

func (s *otpStore) collection() *firestore.CollectionRef {
	return s.client.Collection("otp_verifications")
}

// Replace deletes every existing record for the user and inserts rec in one
// transaction, so concurrent sends can never leave two live codes.
func (s *otpStore) Replace(ctx context.Context, rec models.OTPVerification) error {
	encrypted, err := s.cipher.Encrypt(ctx, rec.Code)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to encrypt OTP code", err)
	}
	rec.Code = encrypted

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := s.collection().Where("userId", "==", rec.UserID)
		iter := tx.Documents(query)
		defer iter.Stop()

		var stale []*firestore.DocumentRef
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			stale = append(stale, doc.Ref)
		}

		for _, ref := range stale {
			if err := tx.Delete(ref); err != nil {
				return err
			}
		}
		return tx.Create(s.collection().Doc(uuid.NewString()), rec)
	})
	if err != nil {
		return errs.NewDatabaseError("create", "failed to store OTP record", err)
	}
	return nil
}

// Consume marks the matching unverified, unexpired record as verified.
// Any miss (absent, wrong code, expired, already verified) returns NotFound;
// the caller reports a uniform "invalid or expired" failure so the reason is
// not leaked.
func (s *otpStore) Consume(ctx context.Context, uid, code string, now time.Time) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := s.collection().
			Where("userId", "==", uid).
			Where("verified", "==", false)
		iter := tx.Documents(query)
		defer iter.Stop()

		var match *firestore.DocumentRef
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}

			var rec models.OTPVerification
			if err := doc.DataTo(&rec); err != nil {
				return err
			}
			if !rec.ExpiresAt.After(now) {
				continue
			}
			stored, err := s.cipher.Decrypt(ctx, rec.Code)
			if err != nil {
				return err
			}
			if stored == code {
				match = doc.Ref
				break
			}
		}

		if match == nil {
			return errs.NewNotFoundError("no matching code")
		}
		return tx.Update(match, []firestore.Update{
			{Path: "verified", Value: true},
		})
	})

	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return errs.NewDatabaseError("update", "failed to consume OTP record", err)
	}
	return nil
}
