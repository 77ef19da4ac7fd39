package models

import "time"

// OTPVerification is one stored passcode. Code holds the KMS-encrypted code,
// never the plaintext. At most one record per user is active; inserting a new
// one removes all prior records for that user.
type OTPVerification struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Email     string    `firestore:"email" json:"email"`
	Code      string    `firestore:"code" json:"-"`
	ExpiresAt time.Time `firestore:"expiresAt" json:"expiresAt"`
	Verified  bool      `firestore:"verified" json:"verified"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
