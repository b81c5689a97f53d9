// decodertest шифрует otr-текст так же, как отправитель: фикстуры для тестов
// декодера и пайплайна. Реализация формата независима от decoder.XChaChaDecrypter,
// поэтому расхождение вывода ключа ловится тестами.
package decodertest

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "notification-extension/account-key/v1"

// Seal возвращает base64(nonce[24] || sealed) для аккаунта accountID.
func Seal(tb testing.TB, masterHex string, accountID uuid.UUID, plaintext []byte) string {
	tb.Helper()

	master, err := hex.DecodeString(masterHex)
	require.NoError(tb, err)

	key := make([]byte, chacha20poly1305.KeySize)
	_, err = io.ReadFull(hkdf.New(sha256.New, master, accountID[:], []byte(keyInfo)), key)
	require.NoError(tb, err)

	aead, err := chacha20poly1305.NewX(key)
	require.NoError(tb, err)

	nonce := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+chacha20poly1305.Overhead)
	_, err = rand.Read(nonce)
	require.NoError(tb, err)

	return base64.StdEncoding.EncodeToString(aead.Seal(nonce, nonce, plaintext, accountID[:]))
}
