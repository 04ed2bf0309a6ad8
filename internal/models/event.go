package models

import "time"

// EventKind определяет тип события в журнале
type EventKind string

const (
	// KindStart - начало рабочей сессии
	KindStart EventKind = "START"
	// KindStop - конец рабочей сессии
	KindStop EventKind = "STOP"
)

// Event представляет неизменяемую запись журнала START/STOP.
// События никогда не обновляются и не удаляются по отдельности;
// исключение - массовая очистка и миграция шифрования поля Note.
type Event struct {
	ID        int64     `json:"id"`        // монотонно возрастающий идентификатор
	Timestamp time.Time `json:"timestamp"` // момент события с субсекундной точностью
	Kind      EventKind `json:"kind"`      // START или STOP
	Note      string    `json:"note"`      // опциональная заметка (возможно зашифрована)
	OwnerID   string    `json:"owner_id"`  // ID пользователя, пустая строка для "ничьих" событий
}
