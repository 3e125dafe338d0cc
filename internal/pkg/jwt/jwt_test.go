package jwt

import (
	"testing"
	"time"
)

func TestSignParse(t *testing.T) {
	SetSecret("test-secret")
	tok, err := Sign("admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "admin" || claims.ID == "" {
		t.Errorf("claims = %+v", claims)
	}

	expired, err := Sign("admin", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(expired); err == nil {
		t.Error("expired token accepted")
	}

	SetSecret("other-secret")
	defer SetSecret("test-secret")
	if _, err := Parse(tok); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
