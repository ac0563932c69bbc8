package utils

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func TestGetAlgorithmFromKey(t *testing.T) {
	ec256, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	ec384, _ := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	rsaKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	edPub, edPriv, _ := ed25519.GenerateKey(rand.Reader)

	tests := []struct {
		name     string
		key      interface{}
		expected string
	}{
		{"ecdsa p256 public", &ec256.PublicKey, "ES256"},
		{"ecdsa p256 private", ec256, "ES256"},
		{"ecdsa p384 public", &ec384.PublicKey, "ES384"},
		{"rsa public", &rsaKey.PublicKey, "RS256"},
		{"ed25519 public", edPub, "EdDSA"},
		{"ed25519 private", edPriv, "EdDSA"},
		{"hmac secret", []byte("secret"), ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := GetAlgorithmFromKey(test.key)
			if result != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestGenerateKeyID(t *testing.T) {
	key, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	first := GenerateKeyID(&key.PublicKey)
	second := GenerateKeyID(&key.PublicKey)

	if len(first) != 16 {
		t.Errorf("Expected 16 character key id, got %q", first)
	}
	if first != second {
		t.Errorf("Expected stable key id, got %s and %s", first, second)
	}
}

func TestGenerateKeyIDUnsupportedKey(t *testing.T) {
	if id := GenerateKeyID("not a key"); id != "" {
		t.Errorf("Expected empty key id, got %q", id)
	}
}
