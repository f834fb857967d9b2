package security

import (
	"strings"
	"testing"
)

func TestValidateConfiguredSecret_Valid(t *testing.T) {
	secrets := []string{
		"fJ3k9Lm2pQ8xVb4nRt7yWc1zHs6dGa0e",
		"A8s7Dk2mQp9xZr4vNb6tYw1cHe5gJu3iLo0f",
	}

	for _, secret := range secrets {
		if err := ValidateConfiguredSecret(secret); err != nil {
			t.Errorf("Expected secret %q to be valid, got: %v", secret, err)
		}
	}
}

func TestValidateConfiguredSecret_TooShort(t *testing.T) {
	err := ValidateConfiguredSecret("short")
	if err == nil {
		t.Fatal("Expected short secret to be rejected")
	}
	if !strings.Contains(err.Error(), "too short") {
		t.Errorf("Expected 'too short' error, got: %v", err)
	}
}

func TestValidateConfiguredSecret_Placeholders(t *testing.T) {
	tests := []string{
		"replace-with-secret-and-some-padding-here",
		"changeme-changeme-changeme-changeme-okay",
		"topsecret-topsecret-topsecret-topsecret",
	}

	for _, secret := range tests {
		t.Run(secret, func(t *testing.T) {
			err := ValidateConfiguredSecret(secret)
			if err == nil {
				t.Fatal("Expected placeholder secret to be rejected")
			}
			if !strings.Contains(err.Error(), "placeholder") {
				t.Errorf("Expected 'placeholder' error, got: %v", err)
			}
		})
	}
}

func TestValidateConfiguredSecret_LowEntropy(t *testing.T) {
	err := ValidateConfiguredSecret(strings.Repeat("ab", 20))
	if err == nil {
		t.Fatal("Expected low-entropy secret to be rejected")
	}
	if !strings.Contains(err.Error(), "entropy") {
		t.Errorf("Expected 'entropy' error, got: %v", err)
	}
}

func TestCalculateEntropy(t *testing.T) {
	if e := calculateEntropy(""); e != 0 {
		t.Errorf("Expected zero entropy for empty string, got %f", e)
	}

	if e := calculateEntropy("aaaaaaaa"); e != 0 {
		t.Errorf("Expected zero entropy for repeated character, got %f", e)
	}

	uniform := calculateEntropy("abcdefgh")
	if uniform != 3.0 {
		t.Errorf("Expected entropy 3.0 for 8 distinct characters, got %f", uniform)
	}
}
