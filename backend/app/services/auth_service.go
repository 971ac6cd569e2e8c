package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"timeblessed/store"
)

const (
	AdminSubject    = "admin"
	AdminRole       = "admin"
	passwordHashKey = "admin_password_hash"
	minPasswordLen  = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLen)
)

// AuthService guards the control API with a single admin password kept as a
// bcrypt hash in the settings table.
type AuthService struct{ settings *store.SettingRepository }

func NewAuthService(settings *store.SettingRepository) *AuthService {
	return &AuthService{settings: settings}
}

// EnsureAdmin seeds the password on first start and leaves an existing one alone.
func (s *AuthService) EnsureAdmin(initialPassword string) error {
	_, ok, err := s.settings.Get(passwordHashKey)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.SetPassword(initialPassword)
}

func (s *AuthService) SetPassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.settings.Set(passwordHashKey, string(hash))
}

func (s *AuthService) ValidatePassword(password string) error {
	hash, ok, err := s.settings.Get(passwordHashKey)
	if err != nil {
		return err
	}
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword requires the current password.
func (s *AuthService) ChangePassword(current, next string) error {
	if err := s.ValidatePassword(current); err != nil {
		return err
	}
	return s.SetPassword(next)
}
