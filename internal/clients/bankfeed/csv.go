// Package bankfeed provides bank movement sources for transaction sync.
// A real bank API integration is out of scope; the shipped source reads
// exported statement files dropped into the data directory.
package bankfeed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
	"github.com/pathwise/pathwise/internal/modules/transactions"
)

// CSVImporter reads bank statement exports from <dir>/<userID>.csv.
// Expected columns: date (YYYY-MM-DD), merchant, amount, type (DEBIT or
// CREDIT), currency. A header row is skipped when present.
type CSVImporter struct {
	dir string
	log zerolog.Logger
}

// NewCSVImporter creates a new CSVImporter rooted at dir.
func NewCSVImporter(dir string, log zerolog.Logger) *CSVImporter {
	return &CSVImporter{
		dir: dir,
		log: log.With().Str("client", "bankfeed-csv").Logger(),
	}
}

// Import implements transactions.Importer. A missing statement file means
// there is nothing to sync, not an error.
func (c *CSVImporter) Import(ctx context.Context, userID uuid.UUID) ([]transactions.BankRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(c.dir, userID.String()+".csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		c.log.Debug().Str("path", path).Msg("No statement file for user")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open statement file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 5

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse statement file %s: %w", path, err)
	}

	var records []transactions.BankRecord
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "date") {
			continue
		}
		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("statement file %s line %d: %w", path, i+1, err)
		}
		records = append(records, record)
	}

	c.log.Info().Str("path", path).Int("records", len(records)).Msg("Statement file imported")
	return records, nil
}

func parseRow(row []string) (transactions.BankRecord, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(row[0]))
	if err != nil {
		return transactions.BankRecord{}, fmt.Errorf("invalid date %q", row[0])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil || !amount.IsPositive() {
		return transactions.BankRecord{}, fmt.Errorf("invalid amount %q", row[2])
	}

	movementType := domain.TransactionType(strings.ToUpper(strings.TrimSpace(row[3])))
	if movementType != domain.TransactionDebit && movementType != domain.TransactionCredit {
		return transactions.BankRecord{}, fmt.Errorf("invalid movement type %q", row[3])
	}

	return transactions.BankRecord{
		MerchantName: strings.TrimSpace(row[1]),
		Amount:       amount,
		Type:         movementType,
		Currency:     strings.ToUpper(strings.TrimSpace(row[4])),
		Date:         date,
	}, nil
}
