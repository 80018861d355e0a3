// auth/password.go
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations matches werkzeug's generate_password_hash default for pbkdf2:sha256.
const DefaultIterations = 600000

const (
	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	saltLength = 16
	keyLength  = sha256.Size
)

// HashPassword returns "pbkdf2:sha256:<iterations>$<salt>$<hex digest>", the
// format stored in user_profiles.password.
func HashPassword(password string, iterations int) (string, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	salt, err := randomSalt()
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, salt, hex.EncodeToString(key)), nil
}

// CheckPassword reports whether password matches hash. Malformed or
// unsupported hashes never match.
func CheckPassword(hash, password string) bool {
	method, salt, digest, ok := splitHash(hash)
	if !ok {
		return false
	}
	parts := strings.Split(method, ":")
	if len(parts) < 2 || parts[0] != "pbkdf2" || parts[1] != "sha256" {
		return false
	}
	iterations := DefaultIterations
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func splitHash(hash string) (method, salt, digest string, ok bool) {
	parts := strings.SplitN(hash, "$", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func randomSalt() (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltChars[int(b)%len(saltChars)]
	}
	return string(buf), nil
}
