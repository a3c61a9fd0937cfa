package anomaly

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/pathwise/pathwise/internal/domain"
)

// Detector classifies current-month category spending against a trailing
// historical baseline. Pure: it only looks at the debits it is handed.
type Detector struct {
	windowMonths int
	thresholds   Thresholds
}

// NewDetector creates a detector with the given trailing window (months of
// history before the current month) and severity thresholds.
func NewDetector(windowMonths int, thresholds Thresholds) *Detector {
	return &Detector{windowMonths: windowMonths, thresholds: thresholds}
}

// Finding is one over-baseline category, before persistence and dedup.
type Finding struct {
	Category string
	Severity domain.Severity
	Actual   decimal.Decimal
	Baseline decimal.Decimal
	Message  string
}

// Detect splits the debits into the current calendar month and the trailing
// historical months, then flags every category whose current spend exceeds
// its historical monthly average by the configured ratios.
//
// Categories with no historical months of data, or a zero average, are
// skipped: no baseline means no anomaly, regardless of the current amount.
func (d *Detector) Detect(debits []Debit, now time.Time) []Finding {
	currentStart := domain.StartOfMonth(now)
	windowStart := domain.AddMonths(currentStart, -d.windowMonths)

	// Per-category current-month totals, and per-category per-month
	// historical totals keyed by the month's first day.
	current := make(map[string]decimal.Decimal)
	historical := make(map[string]map[time.Time]decimal.Decimal)

	for _, debit := range debits {
		switch {
		case !debit.Date.Before(currentStart):
			current[debit.Category] = current[debit.Category].Add(debit.Amount)
		case !debit.Date.Before(windowStart):
			month := domain.StartOfMonth(debit.Date)
			if historical[debit.Category] == nil {
				historical[debit.Category] = make(map[time.Time]decimal.Decimal)
			}
			historical[debit.Category][month] = historical[debit.Category][month].Add(debit.Amount)
		}
	}

	var findings []Finding
	for category, actual := range current {
		months := historical[category]
		if len(months) == 0 {
			continue
		}

		sums := make([]float64, 0, len(months))
		for _, sum := range months {
			sums = append(sums, sum.InexactFloat64())
		}
		average := stat.Mean(sums, nil)
		if average <= 0 {
			continue
		}

		ratio := actual.InexactFloat64() / average
		severity, ok := d.classify(ratio)
		if !ok {
			continue
		}

		baseline := decimal.NewFromFloat(average).Round(domain.MoneyScale)
		findings = append(findings, Finding{
			Category: category,
			Severity: severity,
			Actual:   actual,
			Baseline: baseline,
			Message:  findingMessage(category, severity, actual, baseline),
		})
	}
	return findings
}

func (d *Detector) classify(ratio float64) (domain.Severity, bool) {
	switch {
	case ratio >= d.thresholds.High:
		return domain.SeverityHigh, true
	case ratio >= d.thresholds.Medium:
		return domain.SeverityMedium, true
	case ratio >= d.thresholds.Low:
		return domain.SeverityLow, true
	default:
		return "", false
	}
}

func findingMessage(category string, severity domain.Severity, actual, baseline decimal.Decimal) string {
	switch severity {
	case domain.SeverityHigh:
		return fmt.Sprintf("Your %s spending this month is %s, more than triple your usual %s. Worth a close look.",
			category, domain.FormatAmount(actual), domain.FormatAmount(baseline))
	case domain.SeverityMedium:
		return fmt.Sprintf("Your %s spending this month is %s, about double your usual %s.",
			category, domain.FormatAmount(actual), domain.FormatAmount(baseline))
	default:
		return fmt.Sprintf("Your %s spending this month is %s, noticeably above your usual %s.",
			category, domain.FormatAmount(actual), domain.FormatAmount(baseline))
	}
}
