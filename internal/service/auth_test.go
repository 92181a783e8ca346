package service_test

import (
	"testing"

	"github.com/aivahq/aiva-lite-api/internal/service"

	"go.uber.org/zap"
)

func TestAuthenticate_AdminSuccess(t *testing.T) {
	gate := service.NewAuthGate(zap.NewNop())

	ok, user := gate.Authenticate("admin@aiva.com", "admin123")
	if !ok {
		t.Fatal("expected successful login")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
	if user.Name != "Admin User" {
		t.Errorf("expected name 'Admin User', got %q", user.Name)
	}
}

func TestAuthenticate_DemoSuccess(t *testing.T) {
	gate := service.NewAuthGate(zap.NewNop())

	ok, user := gate.Authenticate("demo@aiva.com", "demo123")
	if !ok {
		t.Fatal("expected successful login")
	}
	if user.Role != "user" {
		t.Errorf("expected role 'user', got %q", user.Role)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	gate := service.NewAuthGate(zap.NewNop())

	ok, user := gate.Authenticate("admin@aiva.com", "wrong")
	if ok || user != nil {
		t.Error("expected failed login for wrong password")
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	gate := service.NewAuthGate(zap.NewNop())

	ok, user := gate.Authenticate("nobody@aiva.com", "admin123")
	if ok || user != nil {
		t.Error("expected failed login for unknown email")
	}
}

func TestAuthenticate_CaseSensitive(t *testing.T) {
	gate := service.NewAuthGate(zap.NewNop())

	if ok, _ := gate.Authenticate("Admin@aiva.com", "admin123"); ok {
		t.Error("expected email match to be case-sensitive")
	}
	if ok, _ := gate.Authenticate("admin@aiva.com", "ADMIN123"); ok {
		t.Error("expected password match to be case-sensitive")
	}
}
