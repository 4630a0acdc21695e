package jwt

import (
	"strings"
	"testing"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Setenv("SCRAPER_API_SECRET", "test-secret")
	repository := &TokenRepository{}

	token, err := repository.AccessToken("42")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}
	uid, err := repository.Uid(token)
	if err != nil {
		t.Fatalf("Uid error: %v", err)
	}
	if uid != "42" {
		t.Errorf("uid = %q, want 42", uid)
	}
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	t.Setenv("SCRAPER_API_SECRET", "test-secret")
	repository := &TokenRepository{}

	token, err := repository.RefreshToken("42")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if _, err := repository.Uid(token); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestUidRejectsTamperedToken(t *testing.T) {
	t.Setenv("SCRAPER_API_SECRET", "test-secret")
	repository := &TokenRepository{}

	token, err := repository.AccessToken("42")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := repository.Uid(tampered); err == nil {
		t.Error("tampered signature accepted")
	}
}

func TestUidRejectsWrongSecret(t *testing.T) {
	t.Setenv("SCRAPER_API_SECRET", "test-secret")
	repository := &TokenRepository{}
	token, err := repository.AccessToken("42")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}

	t.Setenv("SCRAPER_API_SECRET", "another-secret")
	if _, err := repository.Uid(token); err == nil {
		t.Error("token verified against a different secret")
	}
}
