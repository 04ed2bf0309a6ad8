// Package notes реализует обратимое шифрование заметок "на месте":
// один симметричный ключ на все заметки, включение и выключение мигрируют
// все сохраненные значения одной транзакцией.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avdeyev/worklog/internal/crypto"
	"github.com/avdeyev/worklog/internal/keyring"
	"github.com/avdeyev/worklog/internal/storage"
)

// CipherPrefix помечает зашифрованные значения. Легаси plaintext без
// префикса распознается без попытки расшифровки, поэтому "никогда не
// шифровалось" и "не тот ключ" различимы.
const CipherPrefix = "enc:v1:"

// Service предоставляет шифрование заметок и миграции enable/disable
type Service struct {
	events   storage.EventStore
	settings storage.SettingsStore
	ring     *keyring.Keyring
}

// NewService создает новый сервис шифрования заметок
func NewService(events storage.EventStore, settings storage.SettingsStore, ring *keyring.Keyring) *Service {
	return &Service{
		events:   events,
		settings: settings,
		ring:     ring,
	}
}

// Enabled reports whether notes are currently stored encrypted.
func (s *Service) Enabled(ctx context.Context) (bool, error) {
	value, err := s.settings.GetSetting(ctx, storage.KeyNotesEncrypted)
	if err != nil {
		if errors.Is(err, storage.ErrSettingNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read encryption flag: %w", err)
	}
	return value == "1", nil
}

// EncryptNote шифрует заметку перед сохранением.
// Без активного ключа (шифрование выключено) возвращает вход как есть.
func (s *Service) EncryptNote(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	enabled, err := s.Enabled(ctx)
	if err != nil {
		return "", err
	}
	if !enabled {
		return plaintext, nil
	}

	key, err := s.ring.Get(keyring.NoteKey)
	if err != nil {
		if errors.Is(err, keyring.ErrSecretNotFound) {
			// Флаг стоит, а ключа нет: не теряем заметку, сохраняем открытой
			return plaintext, nil
		}
		return "", fmt.Errorf("failed to load note key: %w", err)
	}

	return encryptWithKey(plaintext, key)
}

// DecryptNote расшифровывает сохраненное значение.
// Значения без префикса возвращаются как есть (легаси plaintext).
// Ошибка расшифровки не фатальна: возвращается сохраненное значение
// без изменений - явная best-effort политика, а не тихая порча данных.
func (s *Service) DecryptNote(ctx context.Context, stored string) string {
	if !strings.HasPrefix(stored, CipherPrefix) {
		return stored
	}

	key, err := s.ring.Get(keyring.NoteKey)
	if err != nil {
		return stored
	}

	plaintext, err := crypto.DecryptFromBase64(strings.TrimPrefix(stored, CipherPrefix), key)
	if err != nil {
		return stored
	}

	return string(plaintext)
}

// Enable включает шифрование: генерирует ключ при отсутствии и мигрирует
// все сохраненные заметки из plaintext в ciphertext одной транзакцией
func (s *Service) Enable(ctx context.Context) error {
	key, err := s.ring.GetOrCreate(keyring.NoteKey)
	if err != nil {
		return fmt.Errorf("failed to prepare note key: %w", err)
	}

	err = s.events.TransformNotes(ctx, func(note string) (string, error) {
		if strings.HasPrefix(note, CipherPrefix) {
			return note, nil
		}
		return encryptWithKey(note, key)
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt notes: %w", err)
	}

	if err := s.settings.SetSetting(ctx, storage.KeyNotesEncrypted, "1"); err != nil {
		return fmt.Errorf("failed to set encryption flag: %w", err)
	}

	return nil
}

// Disable выключает шифрование: расшифровывает все заметки обратно
// в plaintext и удаляет ключ
func (s *Service) Disable(ctx context.Context) error {
	key, err := s.ring.Get(keyring.NoteKey)
	if err != nil && !errors.Is(err, keyring.ErrSecretNotFound) {
		return fmt.Errorf("failed to load note key: %w", err)
	}

	err = s.events.TransformNotes(ctx, func(note string) (string, error) {
		if !strings.HasPrefix(note, CipherPrefix) || key == nil {
			return note, nil
		}
		plaintext, err := crypto.DecryptFromBase64(strings.TrimPrefix(note, CipherPrefix), key)
		if err != nil {
			// Не тот ключ - оставляем как есть, не роняя миграцию
			return note, nil
		}
		return string(plaintext), nil
	})
	if err != nil {
		return fmt.Errorf("failed to decrypt notes: %w", err)
	}

	if err := s.ring.Delete(keyring.NoteKey); err != nil {
		return fmt.Errorf("failed to discard note key: %w", err)
	}

	if err := s.settings.SetSetting(ctx, storage.KeyNotesEncrypted, "0"); err != nil {
		return fmt.Errorf("failed to clear encryption flag: %w", err)
	}

	return nil
}

// Rotate - деструктивная ротация ключа: журнал событий и ключ удаляются
// целиком, история НЕ перешифровывается. Страховочный бэкап делает
// вызывающая сторона до вызова.
func (s *Service) Rotate(ctx context.Context) error {
	if err := s.events.DeleteAllEvents(ctx); err != nil {
		return fmt.Errorf("failed to wipe event ledger: %w", err)
	}

	if err := s.ring.Delete(keyring.NoteKey); err != nil {
		return fmt.Errorf("failed to discard note key: %w", err)
	}

	if err := s.settings.SetSetting(ctx, storage.KeyNotesEncrypted, "0"); err != nil {
		return fmt.Errorf("failed to clear encryption flag: %w", err)
	}

	return nil
}

func encryptWithKey(plaintext string, key []byte) (string, error) {
	encrypted, err := crypto.EncryptToBase64([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return CipherPrefix + encrypted, nil
}
