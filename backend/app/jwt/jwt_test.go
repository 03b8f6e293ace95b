package jwtutil

import "testing"

func TestSignParseRoundTrip(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), Issuer: "sysai-relay", ExpMin: 5}

	token, err := s.Sign(7, "admin", "admin")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "sysai-relay" {
		t.Errorf("issuer = %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := &Signer{Secret: []byte("right"), Issuer: "sysai-relay", ExpMin: 5}
	token, err := signer.Sign(1, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	other := &Signer{Secret: []byte("wrong"), Issuer: "sysai-relay", ExpMin: 5}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), ExpMin: 5}
	if _, err := s.Parse("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
