package secrets

import (
	"encoding/base64"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	box, err := New("unit-test-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, plaintext := range []string{"", "sk-abc123", "многобайтовый ключ 🔑"} {
		sealed, err := box.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plaintext, err)
		}
		if sealed == plaintext && plaintext != "" {
			t.Fatalf("ciphertext equals plaintext")
		}
		got, err := box.Decrypt(sealed)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != plaintext {
			t.Fatalf("round trip = %q, want %q", got, plaintext)
		}
	}
}

func TestEncryptProducesFreshNonce(t *testing.T) {
	box, err := New("unit-test-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, _ := box.Encrypt("same value")
	b, _ := box.Encrypt("same value")
	if a == b {
		t.Fatalf("two encryptions produced identical ciphertext")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	box, err := New("unit-test-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sealed, err := box.Encrypt("sk-abc123")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw[len(raw)-1] ^= 0x01
	if _, err := box.Decrypt(base64.StdEncoding.EncodeToString(raw)); err == nil {
		t.Fatalf("tampered ciphertext accepted")
	}

	if _, err := box.Decrypt("not-base64!!"); err == nil {
		t.Fatalf("invalid base64 accepted")
	}
	if _, err := box.Decrypt(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Fatalf("truncated ciphertext accepted")
	}
}

func TestDecryptWithWrongSecretFails(t *testing.T) {
	boxA, _ := New("secret-a")
	boxB, _ := New("secret-b")

	sealed, err := boxA.Encrypt("sk-abc123")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := boxB.Decrypt(sealed); err == nil {
		t.Fatalf("wrong secret decrypted ciphertext")
	}
}

func TestNewRejectsEmptySecret(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("empty secret accepted")
	}
}
