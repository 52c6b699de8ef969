package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWTWithSecret("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, admin, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d; want 42", userID)
	}
	if admin {
		t.Fatalf("regular token must not carry the admin claim")
	}
}

func TestJWTAdminClaim(t *testing.T) {
	InitJWTWithSecret("test-secret")

	token, err := GenerateAdminJWT(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, admin, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 7 || !admin {
		t.Fatalf("got user=%d admin=%v; want user=7 admin=true", userID, admin)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	InitJWTWithSecret("test-secret")

	if _, _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	InitJWTWithSecret("secret-a")
	token, err := GenerateJWT(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWTWithSecret("secret-b")
	if _, _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
