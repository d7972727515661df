// Package secret генерирует refresh-секреты и их отпечатки.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Size — длина секрета в байтах (256 бит энтропии).
const Size = 32

// Generate возвращает новый криптостойкий секрет в base64url без паддинга.
func Generate() (string, error) {
	const op = "security.secret.Generate"

	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Fingerprint — sha256 секрета в base64url. В БД хранится только он.
func Fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
