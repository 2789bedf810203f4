package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	base := time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)
	today := func(h, m int) time.Time { return time.Date(2024, 3, 9, h, m, 0, 0, time.UTC) }
	tomorrow := func(h, m int) time.Time { return time.Date(2024, 3, 10, h, m, 0, 0, time.UTC) }

	tests := []struct {
		in   string
		want time.Time
	}{
		{"5 pm", today(17, 0)},
		{"5pm", today(17, 0)},
		{"5:30 pm", today(17, 30)},
		{"5:30 p.m.", today(17, 30)},
		{"17:45", today(17, 45)},
		{"9 am", tomorrow(9, 0)},
		{"12 am", tomorrow(0, 0)},
		{"12 pm", tomorrow(12, 0)},
		{"noon", tomorrow(12, 0)},
		{"midnight", tomorrow(0, 0)},
		{"2 pm", tomorrow(14, 0)},
		{"at 14:30", today(14, 30)},
		{"09:05", tomorrow(9, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTime_Rejects(t *testing.T) {
	base := time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)

	for _, in := range []string{"", "teatime", "5", "13 pm", "0 am", "25:00", "10:75", "tomorrow"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTime(in, base)
			assert.ErrorIs(t, err, ErrUnrecognizedTime)
		})
	}
}
