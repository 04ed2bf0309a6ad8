// Package report - тонкая прослойка над read-only лентами трекера:
// CSV-выгрузка завершенных сессий и подготовка контекста для AI-сводок.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/avdeyev/worklog/internal/models"
)

// WriteSessionsCSV пишет завершенные сессии в CSV:
// date,start,end,duration,note
func WriteSessionsCSV(w io.Writer, sessions []models.Session) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"date", "start", "end", "duration", "note"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, session := range sessions {
		record := []string{
			session.Start.Format("2006-01-02"),
			session.Start.Format("15:04:05"),
			session.End.Format("15:04:05"),
			models.FormatDuration(session.Duration()),
			session.Note,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
