package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/config"
	"github.com/BruksfildServices01/salas-reservas/internal/testfixtures"
)

type failingTokens struct{ MemoryTokenStore }

func (*failingTokens) Get(context.Context, string) (string, error) {
	return "", errors.New("redis down")
}

func TestNewRestoresPersistedToken(t *testing.T) {
	ctx := context.Background()
	tokens := NewMemoryTokenStore(time.Hour)
	tokens.Set(ctx, "sid", testfixtures.Token(float64(42), "Ana@Example.com", "Ana"))

	s := New(ctx, tokens, "sid", config.NewAllowlist(""), nil, nil)

	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}
	u := s.User()
	if u == nil || u.ID != "42" || u.Email != "Ana@Example.com" || u.Name != "Ana" {
		t.Fatalf("user = %+v", u)
	}
	if u.Role != RoleUser {
		t.Fatalf("role = %q", u.Role)
	}
}

func TestNewWithMalformedTokenHasNoUser(t *testing.T) {
	ctx := context.Background()
	tokens := NewMemoryTokenStore(time.Hour)
	tokens.Set(ctx, "sid", "abc.def")

	s := New(ctx, tokens, "sid", config.NewAllowlist(""), nil, nil)
	if s.User() != nil {
		t.Fatalf("expected no user, got %+v", s.User())
	}
	if s.IsAdmin() {
		t.Fatal("no user cannot be admin")
	}
}

func TestNewSurvivesTokenStoreFailure(t *testing.T) {
	s := New(context.Background(), &failingTokens{}, "sid", config.NewAllowlist(""), nil, nil)
	if s.IsAuthenticated() || s.User() != nil {
		t.Fatal("expected empty session")
	}
}

func TestDecodeToken(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		wantErr bool
		wantID  string
	}{
		{"numeric sub", testfixtures.Token(float64(7), "a@b.com", "A"), false, "7"},
		{"string sub", testfixtures.Token("u-9", "a@b.com", "A"), false, "u-9"},
		{"missing email", testfixtures.Token("1", "", "A"), true, ""},
		{"two segments", "aaa.bbb", true, ""},
		{"garbage payload", "aaa.!!!.ccc", true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := DecodeToken(tc.token)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedToken) {
					t.Fatalf("expected ErrMalformedToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeToken: %v", err)
			}
			if u.ID != tc.wantID {
				t.Fatalf("id = %q, want %q", u.ID, tc.wantID)
			}
		})
	}
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	ctx := context.Background()
	backend := testfixtures.NewBackend(t)
	google, backendToken := backend.LoginFor("ana@example.com", "Ana")

	tokens := NewMemoryTokenStore(time.Hour)
	s := New(ctx, tokens, "sid", config.NewAllowlist(""), backend.Client(), nil)

	res := s.Login(ctx, google)
	if !res.Success || res.Error != "" {
		t.Fatalf("login = %+v", res)
	}
	if s.Token() != backendToken {
		t.Fatal("token not kept in session")
	}
	if got, _ := tokens.Get(ctx, "sid"); got != backendToken {
		t.Fatal("token not persisted")
	}
	if s.Email() != "ana@example.com" {
		t.Fatalf("email = %q", s.Email())
	}

	// a new store for the same workspace restores the session
	again := New(ctx, tokens, "sid", config.NewAllowlist(""), backend.Client(), nil)
	if again.User() == nil || again.User().Email != "ana@example.com" {
		t.Fatalf("restored user = %+v", again.User())
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	backend := testfixtures.NewBackend(t)
	tokens := NewMemoryTokenStore(time.Hour)
	s := New(ctx, tokens, "sid", config.NewAllowlist(""), backend.Client(), nil)

	res := s.Login(ctx, "bogus")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "Token do Google inválido" {
		t.Fatalf("error = %q", res.Error)
	}
	if s.IsAuthenticated() {
		t.Fatal("should not be authenticated")
	}
	if got, _ := tokens.Get(ctx, "sid"); got != "" {
		t.Fatal("token persisted on failure")
	}
}

func TestLogoutClearsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	backend := testfixtures.NewBackend(t)
	google, _ := backend.LoginFor("ana@example.com", "Ana")
	tokens := NewMemoryTokenStore(time.Hour)
	s := New(ctx, tokens, "sid", config.NewAllowlist(""), backend.Client(), nil)
	s.Login(ctx, google)
	backend.ResetCalls()

	s.Logout(ctx)

	if s.IsAuthenticated() || s.User() != nil || s.Token() != "" {
		t.Fatal("session not cleared")
	}
	if got, _ := tokens.Get(ctx, "sid"); got != "" {
		t.Fatal("persisted token not removed")
	}
	if n := len(backend.Calls()); n != 0 {
		t.Fatalf("logout made %d backend calls", n)
	}
}

func TestIsAdminTracksAllowlist(t *testing.T) {
	ctx := context.Background()
	tokens := NewMemoryTokenStore(time.Hour)
	tokens.Set(ctx, "sid", testfixtures.Token("1", "Boss@Example.com", "Boss"))
	admins := config.NewAllowlist("other@example.com")

	s := New(ctx, tokens, "sid", admins, nil, nil)
	if s.IsAdmin() {
		t.Fatal("not yet on the allowlist")
	}

	admins.Replace(" boss@example.com , other@example.com")
	if !s.IsAdmin() {
		t.Fatal("allowlist change not observed")
	}
	if s.User().Role != RoleAdmin {
		t.Fatalf("role = %q", s.User().Role)
	}

	admins.Replace("")
	if s.IsAdmin() {
		t.Fatal("removal not observed")
	}
}
