package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// SignaturePrefix is prepended to the hex digest in the header value
	SignaturePrefix = "sha256="

	// Header is the HTTP header carrying the signature
	Header = "X-Hub-Signature-256"
)

// Sign computes the HMAC-SHA256 signature of payload keyed with
// secret and returns it as "sha256=<lowercase hex digest>". The
// result is deterministic: identical payload and secret always
// produce the same signature.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a received signature against the expected HMAC-SHA256
// of the payload. This mirrors what the webhook receiver does on its
// side, so a sender can confirm a signature before shipping it.
func Verify(payload []byte, sig, secret string) bool {
	// Signature must be present
	if sig == "" {
		return false
	}

	// Signature format: "sha256=<hex_digest>"
	if !strings.HasPrefix(sig, SignaturePrefix) {
		return false
	}

	receivedMAC := strings.TrimPrefix(sig, SignaturePrefix)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	// Constant-time comparison to prevent timing attacks
	return hmac.Equal([]byte(expectedMAC), []byte(receivedMAC))
}
