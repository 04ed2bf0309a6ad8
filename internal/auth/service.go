// Package auth реализует локальный auth gate: регистрацию, вход и выход,
// а также проверку "текущего пользователя" для user-scoped команд.
// Сессия хранится как подписанный токен в таблице settings.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avdeyev/worklog/internal/crypto"
	"github.com/avdeyev/worklog/internal/keyring"
	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/storage"
	"github.com/avdeyev/worklog/internal/validation"
)

// Service предоставляет функции авторизации
type Service struct {
	users    storage.UserStore
	settings storage.SettingsStore
	ring     *keyring.Keyring
	now      func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(users storage.UserStore, settings storage.SettingsStore, ring *keyring.Keyring) *Service {
	return &Service{
		users:    users,
		settings: settings,
		ring:     ring,
		now:      time.Now,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	User *models.User
	// AdoptedEvents - сколько "ничьих" событий забрал первый пользователь
	AdoptedEvents int64
}

// Register регистрирует нового пользователя.
// Первый зарегистрированный пользователь усыновляет все события без
// владельца (см. UserStore.CreateUser).
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*RegisterResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	saltBase64, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := crypto.HashPasswordBase64Salt(password, saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: saltBase64,
		CreatedAt:    s.now(),
	}

	adopted, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if adopted > 0 {
		slog.Info("adopted ownerless events", "count", adopted, "user", username)
	}

	return &RegisterResult{User: user, AdoptedEvents: adopted}, nil
}

// Login проверяет учетные данные и сохраняет сессионный токен
// текущего пользователя в settings
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := crypto.VerifyPassword(password, user.PasswordSalt, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	secret, err := s.ring.GetOrCreate(keyring.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to load token secret: %w", err)
	}

	token, err := issueToken(secret, user.ID, user.Username, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.settings.SetSetting(ctx, storage.KeySessionToken, token); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return user, nil
}

// Logout удаляет сохраненную сессию
func (s *Service) Logout(ctx context.Context) error {
	err := s.settings.DeleteSetting(ctx, storage.KeySessionToken)
	if err != nil {
		if errors.Is(err, storage.ErrSettingNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// CurrentUser возвращает текущего пользователя по сохраненной сессии.
// Любая проблема с токеном (нет, истек, не та подпись, пользователь
// удален) схлопывается в ErrNotAuthenticated.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := s.settings.GetSetting(ctx, storage.KeySessionToken)
	if err != nil {
		if errors.Is(err, storage.ErrSettingNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	secret, err := s.ring.Get(keyring.TokenSecret)
	if err != nil {
		if errors.Is(err, keyring.ErrSecretNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load token secret: %w", err)
	}

	claims, err := parseToken(secret, token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// RequireLogin возвращает текущего пользователя или ErrNotAuthenticated.
// Через нее проходят все user-scoped команды.
func (s *Service) RequireLogin(ctx context.Context) (*models.User, error) {
	return s.CurrentUser(ctx)
}

// Unregister удаляет текущего пользователя вместе со всеми его событиями
// (каскад в БД) и завершает сессию
func (s *Service) Unregister(ctx context.Context) error {
	user, err := s.RequireLogin(ctx)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.Logout(ctx); err != nil && !errors.Is(err, ErrNotAuthenticated) {
		return err
	}

	return nil
}
