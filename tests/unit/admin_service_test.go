package unit

import (
	"context"
	"errors"
	"testing"

	adminservice "ovation/contexts/identity-access/admin-service"
	domainerrors "ovation/contexts/identity-access/admin-service/domain/errors"
	httptransport "ovation/contexts/identity-access/admin-service/transport/http"
)

const testJWTSecret = "unit-test-secret"

func registeredAdminModule(t *testing.T, email string, password string, weight int) adminservice.Module {
	t.Helper()
	module := adminservice.NewInMemoryModule(nil, testJWTSecret, nil)
	if _, err := module.Handler.Admins.Register(context.Background(), email, password, weight); err != nil {
		t.Fatalf("register admin failed: %v", err)
	}
	return module
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	module := registeredAdminModule(t, "boss@example.com", "s3cret", 10)

	resp, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "Boss@Example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" || resp.Admin.VoteWeight != 10 {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	admin, err := module.Handler.AuthenticateHandler(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("token authentication failed: %v", err)
	}
	if admin.Email != "boss@example.com" {
		t.Fatalf("unexpected authenticated admin: %+v", admin)
	}
	if admin.LastLogin == nil {
		t.Fatalf("expected last login timestamp recorded")
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	module := registeredAdminModule(t, "boss@example.com", "s3cret", 10)

	for _, attempt := range []httptransport.LoginRequest{
		{Email: "boss@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "s3cret"},
	} {
		_, err := module.Handler.LoginHandler(context.Background(), attempt)
		if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %s, got %v", attempt.Email, err)
		}
	}
}

func TestAdminAuthenticateRejectsGarbageAndForeignTokens(t *testing.T) {
	module := registeredAdminModule(t, "boss@example.com", "s3cret", 10)

	other := adminservice.NewInMemoryModule(nil, "a-different-secret", nil)
	if _, err := other.Handler.Admins.Register(context.Background(), "boss@example.com", "s3cret", 10); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	foreign, err := other.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "boss@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("foreign login failed: %v", err)
	}

	for _, token := range []string{"", "not-a-jwt", foreign.Token} {
		if _, err := module.Handler.AuthenticateHandler(context.Background(), token); !errors.Is(err, domainerrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for token %q, got %v", token, err)
		}
	}
}

func TestAdminUpdateSettings(t *testing.T) {
	module := registeredAdminModule(t, "boss@example.com", "s3cret", 10)
	login, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "boss@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := module.Handler.UpdateSettingsHandler(context.Background(), login.Admin.AdminID, httptransport.UpdateSettingsRequest{
		VoteWeight: 25,
	})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if resp.Admin.VoteWeight != 25 {
		t.Fatalf("expected weight 25, got %d", resp.Admin.VoteWeight)
	}

	_, err = module.Handler.UpdateSettingsHandler(context.Background(), login.Admin.AdminID, httptransport.UpdateSettingsRequest{
		VoteWeight: 0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAdminInput) {
		t.Fatalf("expected ErrInvalidAdminInput for weight 0, got %v", err)
	}
}

func TestWeightResolverGrants(t *testing.T) {
	module := registeredAdminModule(t, "boss@example.com", "s3cret", 15)
	resolver := adminservice.WeightResolver{Resolver: module.Handler.Resolver}

	grant, err := resolver.Resolve(context.Background(), "BOSS@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !grant.IsAdmin || grant.Weight != 15 {
		t.Fatalf("expected admin grant weight 15, got %+v", grant)
	}

	grant, err = resolver.Resolve(context.Background(), "regular@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if grant.IsAdmin || grant.Weight != 1 {
		t.Fatalf("expected public grant weight 1, got %+v", grant)
	}
}
