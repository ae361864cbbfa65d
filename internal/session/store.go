package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/config"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	msgLoginFailed  = "Erro ao fazer login"
	msgLoginNoToken = "Resposta de login inválida"
)

var ErrMalformedToken = errors.New("malformed token")

// Authenticator exchanges an external identity token for a backend session.
type Authenticator interface {
	LoginWithGoogle(ctx context.Context, idToken string) (*models.AuthResponse, error)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Store holds the authenticated identity of one workspace.
type Store struct {
	mu     sync.RWMutex
	token  string
	user   *User
	key    string
	tokens TokenStore
	admins *config.Allowlist
	auth   Authenticator
	logger *zap.Logger
}

// New restores any token persisted under key. A token that cannot be
// decoded leaves the store without a user.
func New(ctx context.Context, tokens TokenStore, key string, admins *config.Allowlist, auth Authenticator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		key:    key,
		tokens: tokens,
		admins: admins,
		auth:   auth,
		logger: logger,
	}

	token, err := tokens.Get(ctx, key)
	if err != nil {
		logger.Warn("session token lookup failed", zap.Error(err))
		return s
	}
	if token == "" {
		return s
	}

	s.token = token
	user, err := DecodeToken(token)
	if err != nil {
		logger.Warn("stored token could not be decoded", zap.Error(err))
		return s
	}
	s.user = user
	return s
}

// DecodeToken reads the JWT payload without verifying the signature.
func DecodeToken(token string) (*User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrMalformedToken)
	}
	name, _ := claims["name"].(string)

	return &User{
		ID:    subject(claims["sub"]),
		Email: email,
		Name:  name,
	}, nil
}

func subject(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func (s *Store) Login(ctx context.Context, idToken string) LoginResult {
	resp, err := s.auth.LoginWithGoogle(ctx, idToken)
	if err != nil {
		s.logger.Info("login rejected", zap.Error(err))
		return LoginResult{Error: apiclient.MessageOr(err, msgLoginFailed)}
	}
	if resp == nil || resp.Token == "" {
		return LoginResult{Error: msgLoginNoToken}
	}

	user := &User{
		ID:    string(resp.User.ID),
		Email: resp.User.Email,
		Name:  resp.User.Name,
	}
	if user.Email == "" {
		decoded, err := DecodeToken(resp.Token)
		if err != nil {
			return LoginResult{Error: msgLoginNoToken}
		}
		user = decoded
	}

	if err := s.tokens.Set(ctx, s.key, resp.Token); err != nil {
		s.logger.Warn("session token not persisted", zap.Error(err))
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = user
	s.mu.Unlock()

	return LoginResult{Success: true}
}

func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx, s.key); err != nil {
		s.logger.Warn("session token not removed", zap.Error(err))
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin checks the session email against the allowlist as it is now.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.admins.Contains(s.user.Email)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Role = RoleUser
	if s.admins.Contains(u.Email) {
		u.Role = RoleAdmin
	}
	return &u
}

func (s *Store) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Email
}
