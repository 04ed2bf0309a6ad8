package storage

import "context"

// Settings keys. Плоское key/value хранилище, последняя запись выигрывает.
const (
	// KeySessionToken - подписанный токен текущего пользователя
	KeySessionToken = "auth.session"
	// KeyNotesEncrypted - "1" когда заметки хранятся зашифрованными
	KeyNotesEncrypted = "notes.encrypted"
	// KeyBackupFrequency - daily | monthly | never | every-N
	KeyBackupFrequency = "backup.frequency"
	// KeyBackupLastRun - RFC3339 время последнего бэкапа
	KeyBackupLastRun = "backup.last_run"
	// KeyLanguage - активный язык интерфейса
	KeyLanguage = "language"
	// KeyUIMode - режим вывода (plain | fancy)
	KeyUIMode = "ui.mode"
	// KeyAIProvider - провайдер AI-сводок
	KeyAIProvider = "ai.provider"
	// KeyAIToken - API ключ провайдера
	KeyAIToken = "ai.key"
)

// SettingsStore defines the flat key/value settings interface.
type SettingsStore interface {
	// GetSetting returns the value for key or ErrSettingNotFound.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting stores the value for key, overwriting any previous value.
	SetSetting(ctx context.Context, key, value string) error

	// DeleteSetting removes the key. Returns ErrSettingNotFound when absent.
	DeleteSetting(ctx context.Context, key string) error
}
