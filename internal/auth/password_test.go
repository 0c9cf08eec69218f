package auth

import (
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "" || hash == password {
		t.Fatal("Expected a non-empty hash distinct from the password")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "correct horse battery staple"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if err := CheckPassword(hash, password); err != nil {
		t.Errorf("Expected matching password to verify, got %v", err)
	}
	if err := CheckPassword(hash, "wrong password"); err == nil {
		t.Error("Expected mismatch error for wrong password")
	}
}
