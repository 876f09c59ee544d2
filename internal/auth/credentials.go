package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// DigestPassword computes the deterministic hex digest stored for a
// credential. Lookups compare (username, digest) pairs directly, so the
// digest must be stable across calls.
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// NewSessionToken mints an opaque, unguessable url-safe token of n random
// bytes. The token is returned to the caller and recorded in the session
// store; nothing in this service ever parses it.
func NewSessionToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
