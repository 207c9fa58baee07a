package auth

import (
	"testing"
	"time"
)

func testService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return New([]byte("test-secret"), []byte(hash))
}

func TestCheckPassword(t *testing.T) {
	s := testService(t)

	if err := s.CheckPassword("correct horse"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := s.CheckPassword("battery staple"); err != ErrInvalidCredentials {
		t.Errorf("invalid password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := testService(t)

	token, err := s.IssueToken(time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !s.VerifyToken(token) {
		t.Error("freshly issued token rejected")
	}
	if s.VerifyToken(token + "x") {
		t.Error("tampered token accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := testService(t)

	token, err := s.IssueToken(time.Now().Add(-8 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if s.VerifyToken(token) {
		t.Error("expired token accepted")
	}
}

func TestForeignSecretRejected(t *testing.T) {
	s := testService(t)
	other := New([]byte("other-secret"), nil)

	token, err := other.IssueToken(time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if s.VerifyToken(token) {
		t.Error("token signed with a different secret accepted")
	}
}
