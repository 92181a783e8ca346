package service

import (
	"go.uber.org/zap"

	"github.com/aivahq/aiva-lite-api/internal/domain"
)

// AuthGate authenticates against a static credential map. Purely
// illustrative demo auth: case-sensitive exact match, no hashing, no
// lockout, no session token issuance.
type AuthGate struct {
	users  map[string]staticUser
	logger *zap.Logger
}

type staticUser struct {
	password string
	name     string
	role     string
}

// NewAuthGate creates the gate with the two built-in demo users.
func NewAuthGate(logger *zap.Logger) *AuthGate {
	return &AuthGate{
		users: map[string]staticUser{
			"admin@aiva.com": {password: "admin123", name: "Admin User", role: "admin"},
			"demo@aiva.com":  {password: "demo123", name: "Demo User", role: "user"},
		},
		logger: logger,
	}
}

// Authenticate checks the credentials. A mismatch is a normal unsuccessful
// result, never an error.
func (g *AuthGate) Authenticate(email, password string) (bool, *domain.User) {
	u, ok := g.users[email]
	if !ok || u.password != password {
		g.logger.Warn("login failed", zap.String("email", email))
		return false, nil
	}
	return true, &domain.User{Email: email, Name: u.name, Role: u.role}
}
