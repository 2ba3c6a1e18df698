package auth

import "testing"

func TestDeviceTokenRoundTrip(t *testing.T) {
	secret := []byte("test-device-secret")

	token, err := MintDeviceToken(secret, 42)
	if err != nil {
		t.Fatalf("MintDeviceToken failed: %v", err)
	}

	claims, err := ParseDeviceToken(secret, token)
	if err != nil {
		t.Fatalf("ParseDeviceToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.ExpiresAt == nil {
		t.Error("token has no expiry")
	}
}

func TestParseDeviceTokenRejectsWrongSecret(t *testing.T) {
	token, err := MintDeviceToken([]byte("secret-a"), 1)
	if err != nil {
		t.Fatalf("MintDeviceToken failed: %v", err)
	}

	if _, err := ParseDeviceToken([]byte("secret-b"), token); err == nil {
		t.Error("expected an error for a token signed with a different secret")
	}
}

func TestParseDeviceTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseDeviceToken([]byte("secret"), "not.a.jwt"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
