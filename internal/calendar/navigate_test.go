package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		name string
		in   Period
		want Period
	}{
		{name: "month overflow", in: Period{2024, 13}, want: Period{2025, 1}},
		{name: "month underflow", in: Period{2024, 0}, want: Period{2023, 12}},
		{name: "in range untouched", in: Period{2024, 6}, want: Period{2024, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePeriod(tt.in))
		})
	}
}

func TestNavigate(t *testing.T) {
	min := Period{2020, 1}
	max := Period{2026, 6}

	t.Run("forward within bounds", func(t *testing.T) {
		got, ok := Navigate(Period{2026, 5}, 0, 1, min, max)
		assert.True(t, ok)
		assert.Equal(t, Period{2026, 6}, got)
	})

	t.Run("forward past the last event month is suppressed", func(t *testing.T) {
		_, ok := Navigate(Period{2026, 6}, 0, 1, min, max)
		assert.False(t, ok)
	})

	t.Run("backward past the first event month is suppressed", func(t *testing.T) {
		_, ok := Navigate(Period{2020, 1}, 0, -1, min, max)
		assert.False(t, ok)
	})

	t.Run("year jump clamps against the month index", func(t *testing.T) {
		// 2025-12 + 1 year lands past 2026-06 even though 2026 is in range.
		_, ok := Navigate(Period{2025, 12}, 1, 0, min, max)
		assert.False(t, ok)

		got, ok := Navigate(Period{2025, 3}, 1, 0, min, max)
		assert.True(t, ok)
		assert.Equal(t, Period{2026, 3}, got)
	})

	t.Run("month delta folds across the year boundary", func(t *testing.T) {
		got, ok := Navigate(Period{2024, 12}, 0, 1, min, max)
		assert.True(t, ok)
		assert.Equal(t, Period{2025, 1}, got)

		got, ok = Navigate(Period{2024, 1}, 0, -1, min, max)
		assert.True(t, ok)
		assert.Equal(t, Period{2023, 12}, got)
	})
}
