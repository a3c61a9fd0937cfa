// Package transactions stores imported bank transactions and derives
// spending analytics from them. The bank feed and the categorization
// strategy are both collaborator interfaces; this module owns only the
// storage and the arithmetic.
package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pathwise/pathwise/internal/domain"
)

// Transaction is one imported bank movement.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	MerchantName    string
	Amount          decimal.Decimal
	Type            domain.TransactionType
	Currency        string
	Category        string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// BankRecord is a raw movement as delivered by the bank feed, before
// categorization.
type BankRecord struct {
	MerchantName string
	Amount       decimal.Decimal
	Type         domain.TransactionType
	Currency     string
	Date         time.Time
}

// Importer pulls raw movements from the user's bank. The real client lives
// outside this repo; tests and development use fakes.
type Importer interface {
	Import(ctx context.Context, userID uuid.UUID) ([]BankRecord, error)
}

// Classifier assigns a spending category to a merchant name. The strategy
// is opaque to this module; the default is keyword matching.
type Classifier interface {
	Classify(merchantName string) string
}

// ListFilter narrows a transaction listing. Zero values mean "no filter";
// Month is only honored together with Year.
type ListFilter struct {
	Merchant string
	Category string
	Month    time.Month
	Year     int
	Page     int
	PageSize int
}

// Page is one page of listed transactions.
type Page struct {
	Transactions []Transaction
	Total        int
	Page         int
	PageSize     int
}
