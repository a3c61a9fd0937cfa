package anomaly

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Detection runs mid-March with a 3-month window: history spans December
// through February, the current period is March so far.
var detectNow = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func debit(category, amount string, year int, month time.Month, day int) Debit {
	return Debit{
		Category: category,
		Amount:   d(amount),
		Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func historyOf(category string, monthly string) []Debit {
	return []Debit{
		debit(category, monthly, 2025, 12, 10),
		debit(category, monthly, 2026, 1, 10),
		debit(category, monthly, 2026, 2, 10),
	}
}

func TestDetect_SeverityBands(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	tests := []struct {
		name     string
		current  string
		severity domain.Severity
		flagged  bool
	}{
		{"triple is high", "300", domain.SeverityHigh, true},
		{"double is medium", "200", domain.SeverityMedium, true},
		{"one and a half is low", "150", domain.SeverityLow, true},
		{"just under low", "149.999", "", false},
		{"normal spend", "100", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debits := append(historyOf("FOOD", "100"), debit("FOOD", tt.current, 2026, 3, 5))
			findings := detector.Detect(debits, detectNow)
			if !tt.flagged {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, "FOOD", findings[0].Category)
			assert.Equal(t, tt.severity, findings[0].Severity)
			assert.True(t, findings[0].Actual.Equal(d(tt.current)))
			assert.True(t, findings[0].Baseline.Equal(d("100")))
		})
	}
}

func TestDetect_NoHistoryNoAnomaly(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	// A brand new category has no baseline, however large the spend.
	findings := detector.Detect([]Debit{debit("TRAVEL", "5000", 2026, 3, 5)}, detectNow)
	assert.Empty(t, findings)
}

func TestDetect_ZeroBaselineSkipped(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	debits := []Debit{
		debit("FOOD", "0", 2026, 1, 10),
		debit("FOOD", "400", 2026, 3, 5),
	}
	assert.Empty(t, detector.Detect(debits, detectNow))
}

func TestDetect_AverageOverMonthsWithData(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	// Two historical months at 80 and 120 average to 100.
	debits := []Debit{
		debit("UTILITIES", "80", 2026, 1, 5),
		debit("UTILITIES", "120", 2026, 2, 5),
		debit("UTILITIES", "210", 2026, 3, 5),
	}
	findings := detector.Detect(debits, detectNow)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityMedium, findings[0].Severity)
	assert.True(t, findings[0].Baseline.Equal(d("100")))
}

func TestDetect_OldTransactionsOutsideWindowIgnored(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	// A huge spike in September 2025 sits outside the window and must not
	// inflate the baseline.
	debits := append(historyOf("FOOD", "100"),
		debit("FOOD", "10000", 2025, 9, 10),
		debit("FOOD", "300", 2026, 3, 5))
	findings := detector.Detect(debits, detectNow)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityHigh, findings[0].Severity)
}

func TestDetect_MultipleCategoriesIndependent(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	debits := append(historyOf("FOOD", "100"), historyOf("TRANSPORT", "50")...)
	debits = append(debits,
		debit("FOOD", "350", 2026, 3, 5),
		debit("TRANSPORT", "55", 2026, 3, 6))

	findings := detector.Detect(debits, detectNow)
	require.Len(t, findings, 1)
	assert.Equal(t, "FOOD", findings[0].Category)
}

func TestDetect_CustomThresholds(t *testing.T) {
	detector := NewDetector(3, Thresholds{High: 5.0, Medium: 4.0, Low: 3.0})

	debits := append(historyOf("FOOD", "100"), debit("FOOD", "300", 2026, 3, 5))
	findings := detector.Detect(debits, detectNow)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityLow, findings[0].Severity)
}

func TestDetect_MessageEmbedsAmounts(t *testing.T) {
	detector := NewDetector(3, DefaultThresholds)

	debits := append(historyOf("FOOD", "100"), debit("FOOD", "301.5", 2026, 3, 5))
	findings := detector.Detect(debits, detectNow)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "BD 301.500")
	assert.Contains(t, findings[0].Message, "BD 100.000")
}
