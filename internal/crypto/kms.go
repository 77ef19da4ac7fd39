package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
)

// Cipher protects short secrets (OTP codes) at rest.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

type kmsCipher struct {
	client  *gcpkms.KeyManagementClient
	keyName string
}

func NewKMSCipher(client *gcpkms.KeyManagementClient, keyName string) *kmsCipher {
	return &kmsCipher{client: client, keyName: keyName}
}

// Encrypt encrypts plaintext with the configured KMS key and returns base64 text.
func (k *kmsCipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Decrypt decrypts base64 ciphertext with the configured KMS key.
func (k *kmsCipher) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", err
	}
	return string(resp.Plaintext), nil
}

// NoopCipher passes values through unchanged. Used for local runs and tests
// where no KMS key is configured.
type NoopCipher struct{}

func (NoopCipher) Encrypt(_ context.Context, plaintext string) (string, error) {
	return plaintext, nil
}

func (NoopCipher) Decrypt(_ context.Context, ciphertext string) (string, error) {
	return ciphertext, nil
}
