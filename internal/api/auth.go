package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"facultyroom/internal/config"
	"facultyroom/internal/models"
	"facultyroom/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errInvalidCredentials = errors.New("invalid credentials")

// Auth exchanges a role's credential pair for a session token and
// resolves tokens back to sessions on every request.
type Auth struct {
	cfg      config.AuthConfig
	sessions session.Store
	logger   zerolog.Logger
}

func NewAuth(cfg config.AuthConfig, sessions session.Store, logger *zerolog.Logger) *Auth {
	var componentLogger zerolog.Logger
	if logger != nil {
		componentLogger = logger.With().Str("component", "auth").Logger()
	}
	return &Auth{cfg: cfg, sessions: sessions, logger: componentLogger}
}

func (a *Auth) credentialsFor(role string) (config.Credentials, bool) {
	switch role {
	case models.RoleTeacher:
		return a.cfg.Teacher, true
	case models.RoleDeveloper:
		return a.cfg.Developer, true
	case models.RoleAdmin:
		return a.cfg.Admin, true
	default:
		return config.Credentials{}, false
	}
}

// Login verifies the credential pair for a role and mints a session
// token. Both username and password are compared in constant time so
// a probe cannot tell which half was wrong.
func (a *Auth) Login(ctx context.Context, role, username, password string) (string, error) {
	creds, ok := a.credentialsFor(role)
	if !ok {
		return "", errInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(password)) == 1
	if !userOK || !passOK {
		a.logger.Warn().Str("role", role).Msg("failed login attempt")
		return "", errInvalidCredentials
	}

	token := uuid.NewString()
	if err := a.sessions.Put(ctx, token, &session.Session{Role: role, IssuedAt: time.Now()}); err != nil {
		return "", err
	}

	a.logger.Info().Str("role", role).Msg("login")
	return token, nil
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.Delete(ctx, token)
}

// Identify resolves the request's token to a session. A missing or
// unknown token yields (nil, nil); errors are store failures only.
func (a *Auth) Identify(r *http.Request) (*session.Session, error) {
	token := extractToken(r)
	if token == "" {
		return nil, nil
	}
	return a.sessions.Get(r.Context(), token)
}

func extractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get("X-Session-Token")); token != "" {
		return token
	}
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
