package models

import (
	"fmt"
	"time"
)

// Session - завершенный рабочий интервал [Start, End), восстановленный
// из пары событий START/STOP одного владельца. Не хранится в БД,
// вычисляется из журнала по требованию.
type Session struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Note  string    `json:"note"` // заметка из события START (расшифрованная)
}

// Duration returns the session length.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// FormatDuration renders a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
