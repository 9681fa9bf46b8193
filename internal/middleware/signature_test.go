package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"entry":[{"changes":[]}]}`)
	secret := "app-secret"

	if !VerifySignature(payload, sign(payload, secret), secret) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(payload, sign(payload, "other-secret"), secret) {
		t.Fatal("signature with wrong secret accepted")
	}
	if VerifySignature([]byte("tampered"), sign(payload, secret), secret) {
		t.Fatal("signature over different payload accepted")
	}
	if VerifySignature(payload, "", secret) {
		t.Fatal("empty signature accepted")
	}
	if VerifySignature(payload, "sha256=deadbeef", secret) {
		t.Fatal("bogus signature accepted")
	}
}
