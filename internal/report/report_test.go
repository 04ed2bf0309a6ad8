package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/worklog/internal/models"
)

func TestWriteSessionsCSV(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	sessions := []models.Session{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Note: "standup"},
		{Start: day.Add(11 * time.Hour), End: day.Add(12*time.Hour + 30*time.Minute), Note: "review, notes"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSessionsCSV(&buf, sessions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,start,end,duration,note", lines[0])
	assert.Equal(t, "2025-03-10,09:00:00,10:00:00,01:00:00,standup", lines[1])
	// Запятая в заметке должна быть экранирована кавычками
	assert.Equal(t, `2025-03-10,11:00:00,12:30:00,01:30:00,"review, notes"`, lines[2])
}

func TestWriteSessionsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSessionsCSV(&buf, nil))
	assert.Equal(t, "date,start,end,duration,note\n", buf.String())
}

func TestBuildContext(t *testing.T) {
	assert.Equal(t, "No work history found.", BuildContext(nil))

	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	events := []models.Event{
		{Timestamp: ts, Kind: models.KindStart, Note: "standup"},
		{Timestamp: ts.Add(time.Hour), Kind: models.KindStop},
	}

	context := BuildContext(events)
	assert.Contains(t, context, "Work History Log:")
	assert.Contains(t, context, "- 2025-03-10T09:00:00Z: START (standup)")
	assert.Contains(t, context, "- 2025-03-10T10:00:00Z: STOP")
	assert.NotContains(t, context, "STOP (")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("how much did I work?", "Work History Log:")
	assert.Contains(t, prompt, "USER QUESTION:\nhow much did I work?")
	assert.Contains(t, prompt, "CONTEXT DATA:\nWork History Log:")
}
