package decoder

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var (
	// ErrInvalidMasterKey — мастер-ключ не hex или не 32 байта.
	ErrInvalidMasterKey = errors.New("invalid master key")
	// ErrDecrypt — шифртекст повреждён или зашифрован другим ключом.
	ErrDecrypt = errors.New("decrypt failed")
)

const keyInfo = "notification-extension/account-key/v1"

// Decrypter расшифровывает otr-текст события аккаунта.
type Decrypter interface {
	Decrypt(accountID uuid.UUID, ciphertext string) ([]byte, error)
}

// XChaChaDecrypter — XChaCha20-Poly1305 с ключом аккаунта, выведенным HKDF-SHA256 из мастер-ключа.
// Формат шифртекста: base64(nonce[24] || sealed), associated data — id аккаунта.
type XChaChaDecrypter struct {
	master []byte
}

// NewXChaChaDecrypter принимает мастер-ключ в hex (32 байта).
func NewXChaChaDecrypter(masterHex string) (*XChaChaDecrypter, error) {
	const op = "decoder.NewXChaChaDecrypter"

	key, err := hex.DecodeString(masterHex)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMasterKey)
	}

	return &XChaChaDecrypter{master: key}, nil
}

func (x *XChaChaDecrypter) accountKey(accountID uuid.UUID) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, x.master, accountID[:], []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}

	return key, nil
}

func (x *XChaChaDecrypter) Decrypt(accountID uuid.UUID, ciphertext string) ([]byte, error) {
	const op = "decoder.XChaChaDecrypter.Decrypt"

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrDecrypt, err)
	}
	if len(raw) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%s: %w: short ciphertext", op, ErrDecrypt)
	}

	key, err := x.accountKey(accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plain, err := aead.Open(nil, nonce, sealed, accountID[:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	return plain, nil
}

var _ Decrypter = (*XChaChaDecrypter)(nil)
