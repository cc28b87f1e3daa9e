package models

import "testing"

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != ROLE_USER {
		t.Fatalf("expected default role %q, got %q", ROLE_USER, user.Role)
	}
	if user.Status != STATUS_ACTIVE {
		t.Fatalf("expected default status %q, got %q", STATUS_ACTIVE, user.Status)
	}
	if user.Password == "secret123" {
		t.Fatalf("password must not be stored in plain text")
	}
	if !CheckPasswordHash("secret123", user.Password) {
		t.Fatalf("stored hash does not verify the original password")
	}
	if CheckPasswordHash("wrong", user.Password) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestCreateUser_Invalid(t *testing.T) {
	if _, err := CreateUser("Al", "alice@example.com", "secret123"); err == nil {
		t.Fatalf("expected error for too short name")
	}
	if _, err := CreateUser("Alice", "not-an-email", "secret123"); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	if _, err := CreateUser("Alice", "alice@example.com", "short"); err == nil {
		t.Fatalf("expected error for too short password")
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: ROLE_USER}).IsAdmin() {
		t.Fatalf("regular user must not be admin")
	}
	if !(&User{Role: ROLE_ADMIN}).IsAdmin() {
		t.Fatalf("admin role must report admin")
	}
}
