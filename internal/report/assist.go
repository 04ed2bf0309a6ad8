package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avdeyev/worklog/internal/models"
)

// Summarizer - внешний AI-коллаборатор. Ядро только отдает ему контекст
// из журнала; ответ не интерпретируется.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// BuildContext форматирует ленту событий в читаемый контекст для
// AI-сводки. События уже расшифрованы трекером.
func BuildContext(events []models.Event) string {
	if len(events) == 0 {
		return "No work history found."
	}

	var b strings.Builder
	b.WriteString("Work History Log:")

	for _, event := range events {
		b.WriteString(fmt.Sprintf("\n- %s: %s", event.Timestamp.Format(time.RFC3339), event.Kind))
		if event.Note != "" {
			b.WriteString(fmt.Sprintf(" (%s)", event.Note))
		}
	}

	return b.String()
}

// BuildPrompt собирает итоговый промпт из вопроса пользователя и контекста
func BuildPrompt(question, context string) string {
	return fmt.Sprintf(
		"You are a helpful work time tracking assistant.\n"+
			"Analyze the following work history log and answer the user's question.\n\n"+
			"CONTEXT DATA:\n%s\n\n"+
			"USER QUESTION:\n%s\n\n"+
			"Keep the answer concise and helpful. Timestamps are ISO 8601.",
		context, question)
}
