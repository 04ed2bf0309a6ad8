package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Frequency
		wantErr bool
	}{
		{name: "never", value: "never", want: Frequency{Kind: Never}},
		{name: "empty defaults to never", value: "", want: Frequency{Kind: Never}},
		{name: "daily", value: "daily", want: Frequency{Kind: Daily}},
		{name: "monthly", value: "monthly", want: Frequency{Kind: Monthly}},
		{name: "custom", value: "every-3", want: Frequency{Kind: Custom, Months: 3}},
		{name: "custom single month", value: "every-1", want: Frequency{Kind: Custom, Months: 1}},
		{name: "zero interval", value: "every-0", wantErr: true},
		{name: "negative interval", value: "every--2", wantErr: true},
		{name: "garbage interval", value: "every-x", wantErr: true},
		{name: "unknown word", value: "weekly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrequency(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrequencyString(t *testing.T) {
	assert.Equal(t, "daily", Frequency{Kind: Daily}.String())
	assert.Equal(t, "every-6", Frequency{Kind: Custom, Months: 6}.String())
}

func TestDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		freq    Frequency
		last    time.Time
		hasLast bool
		want    bool
	}{
		{
			name: "never is never due",
			freq: Frequency{Kind: Never},
			want: false,
		},
		{
			name:    "never ignores stale stamp",
			freq:    Frequency{Kind: Never},
			last:    now.AddDate(-1, 0, 0),
			hasLast: true,
			want:    false,
		},
		{
			name: "bootstrap without prior backup",
			freq: Frequency{Kind: Daily},
			want: true,
		},
		{
			name:    "daily same calendar day",
			freq:    Frequency{Kind: Daily},
			last:    now.Add(-2 * time.Hour),
			hasLast: true,
			want:    false,
		},
		{
			name:    "daily previous day",
			freq:    Frequency{Kind: Daily},
			last:    now.AddDate(0, 0, -1),
			hasLast: true,
			want:    true,
		},
		{
			name:    "monthly same month",
			freq:    Frequency{Kind: Monthly},
			last:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
			hasLast: true,
			want:    false,
		},
		{
			name:    "monthly previous month",
			freq:    Frequency{Kind: Monthly},
			last:    time.Date(2025, 2, 27, 0, 0, 0, 0, time.Local),
			hasLast: true,
			want:    true,
		},
		{
			name:    "monthly previous year same month number",
			freq:    Frequency{Kind: Monthly},
			last:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
			hasLast: true,
			want:    true,
		},
		{
			name:    "custom interval not reached",
			freq:    Frequency{Kind: Custom, Months: 3},
			last:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local),
			hasLast: true,
			want:    false,
		},
		{
			name:    "custom interval reached",
			freq:    Frequency{Kind: Custom, Months: 3},
			last:    time.Date(2024, 12, 10, 0, 0, 0, 0, time.Local),
			hasLast: true,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Due(tt.freq, tt.last, tt.hasLast, now))
		})
	}
}
