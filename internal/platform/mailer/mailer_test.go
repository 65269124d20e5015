package mailer

import (
	"context"
	"strings"
	"testing"
)

func TestDevModeDeliversWithoutSMTP(t *testing.T) {
	m := Mailer{DevMode: true}
	if err := m.SendVerificationCode(context.Background(), "alice@example.com", "123456", "Aurora Belle"); err != nil {
		t.Fatalf("dev mode delivery failed: %v", err)
	}
}

func TestMissingHostFailsOutsideDevMode(t *testing.T) {
	m := Mailer{}
	if err := m.SendVerificationCode(context.Background(), "alice@example.com", "123456", "Aurora Belle"); err == nil {
		t.Fatalf("expected error without smtp host")
	}
}

func TestTLSConfigNamesSMTPHost(t *testing.T) {
	m := Mailer{Host: "smtp.example.com"}
	cfg := m.tlsConfig()
	if cfg.ServerName != "smtp.example.com" {
		t.Fatalf("expected smtp host as tls server name, got %q", cfg.ServerName)
	}
	if cfg.InsecureSkipVerify {
		t.Fatalf("certificate verification must stay enabled")
	}
}

func TestBuildMessageContainsCodeAndContestant(t *testing.T) {
	m := Mailer{From: "noreply@ovation.local"}
	message := m.buildMessage("alice@example.com", "654321", "Marcus Vane")
	for _, want := range []string{
		"To: alice@example.com",
		"Subject: Voting Verification Code",
		"654321",
		"Marcus Vane",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}
}
