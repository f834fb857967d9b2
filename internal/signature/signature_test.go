package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"
)

var signatureFormat = regexp.MustCompile(`^sha256=[0-9a-f]{64}$`)

func TestSign_Deterministic(t *testing.T) {
	payload := []byte(`{"hook_id":"deploy-staging","sha":"abc123"}`)
	secret := "secret123"

	first := Sign(payload, secret)
	second := Sign(payload, secret)

	if first != second {
		t.Errorf("Expected identical signatures on repeated calls, got %q and %q", first, second)
	}
}

func TestSign_Format(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		secret  string
	}{
		{"typical payload", []byte(`{"ref":"refs/heads/main"}`), "secret123"},
		{"empty payload", []byte{}, "secret123"},
		{"empty secret", []byte(`{"ref":"refs/heads/main"}`), ""},
		{"both empty", []byte{}, ""},
		{"non-utf8 payload", []byte{0xff, 0xfe, 0x00, 0x01}, "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Sign(tt.payload, tt.secret)
			if !signatureFormat.MatchString(sig) {
				t.Errorf("Signature %q does not match expected format", sig)
			}
			if len(sig) != 71 {
				t.Errorf("Expected 71-character signature, got %d", len(sig))
			}
		})
	}
}

func TestSign_SingleByteChange(t *testing.T) {
	payload := []byte(`{"hook_id":"deploy-staging"}`)
	secret := "secret123"
	base := Sign(payload, secret)

	// Change one byte of the payload
	modified := make([]byte, len(payload))
	copy(modified, payload)
	modified[0] = '['
	if Sign(modified, secret) == base {
		t.Error("Expected signature to change when payload changes")
	}

	// Change one byte of the secret
	if Sign(payload, "Secret123") == base {
		t.Error("Expected signature to change when secret changes")
	}
}

// The documented example payload must produce a signature that an
// independent HMAC-SHA256 computation reproduces exactly.
func TestSign_KnownPayload(t *testing.T) {
	payload := []byte(`{"hook_id":"deploy-staging","sha":"abc1234567890","ref":"refs/heads/main","repository":"org/repo","sender":"github-actions","triggered_by":"github-actions","workflow_run_id":""}`)
	secret := "secret123"

	got := Sign(payload, secret)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	want := SignaturePrefix + hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Errorf("Expected signature %q, got %q", want, got)
	}
}

func TestVerify_Valid(t *testing.T) {
	payload := []byte(`{"ref":"refs/heads/main"}`)
	secret := "test-secret-at-least-32-chars-long-here"
	sig := Sign(payload, secret)

	if !Verify(payload, sig, secret) {
		t.Error("Expected valid signature to be accepted")
	}
}

func TestVerify_Invalid(t *testing.T) {
	payload := []byte(`{"ref":"refs/heads/main"}`)
	secret := "test-secret-at-least-32-chars-long-here"
	wrongSecret := "wrong-secret-at-least-32-chars-long-x"
	sig := Sign(payload, wrongSecret)

	if Verify(payload, sig, secret) {
		t.Error("Expected invalid signature to be rejected")
	}
}

func TestVerify_Malformed(t *testing.T) {
	payload := []byte(`{"ref":"refs/heads/main"}`)
	secret := "test-secret-at-least-32-chars-long-here"

	testCases := []struct {
		name string
		sig  string
	}{
		{"empty", ""},
		{"no prefix", "abc123def456"},
		{"wrong prefix", "sha1=abc123def456"},
		{"no equals", "sha256abc123def456"},
		{"empty after prefix", "sha256="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if Verify(payload, tc.sig, secret) {
				t.Errorf("Expected malformed signature %q to be rejected", tc.sig)
			}
		})
	}
}
