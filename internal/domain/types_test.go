package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	assert.Equal(t, date(2026, time.February, 28), AddMonths(date(2026, time.January, 31), 1))
	assert.Equal(t, date(2028, time.February, 29), AddMonths(date(2028, time.January, 31), 1))
	assert.Equal(t, date(2026, time.April, 30), AddMonths(date(2026, time.March, 31), 1))
}

func TestAddMonths_PlainAdvance(t *testing.T) {
	assert.Equal(t, date(2026, time.November, 15), AddMonths(date(2026, time.January, 15), 10))
	assert.Equal(t, date(2027, time.January, 1), AddMonths(date(2026, time.December, 1), 1))
	assert.Equal(t, date(2026, time.June, 10), AddMonths(date(2026, time.June, 10), 0))
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same day", date(2026, time.March, 10), date(2026, time.March, 10), 0},
		{"one full month", date(2026, time.March, 10), date(2026, time.April, 10), 1},
		{"just short of a month", date(2026, time.March, 10), date(2026, time.April, 9), 0},
		{"a year ahead", date(2026, time.March, 10), date(2027, time.March, 10), 12},
		{"negative when end precedes start", date(2026, time.June, 1), date(2026, time.March, 1), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WholeMonthsBetween(tt.start, tt.end))
		})
	}
}

func TestSameCalendarMonth(t *testing.T) {
	assert.True(t, SameCalendarMonth(date(2026, time.May, 1), date(2026, time.May, 31)))
	assert.False(t, SameCalendarMonth(date(2026, time.May, 31), date(2026, time.June, 1)))
	assert.False(t, SameCalendarMonth(date(2025, time.May, 1), date(2026, time.May, 1)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "BD 600.000", FormatAmount(decimal.NewFromInt(600)))
	assert.Equal(t, "BD 12.345", FormatAmount(decimal.RequireFromString("12.3450")))
	// Display rounding only - the underlying value stays exact.
	assert.Equal(t, "BD 0.001", FormatAmount(decimal.RequireFromString("0.0005")))
}
