package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceHTX Source = "htx"
	SourceBSC Source = "bsc"
)

func (s Source) IsValid() bool {
	return s == SourceHTX || s == SourceBSC
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Transfer is a movement reported by an exchange or chain explorer.
type Transfer struct {
	ExternalID string
	Direction  Direction
	Amount     decimal.Decimal
	Currency   string
	OccurredAt time.Time
}

// Fetcher pulls recent transfers from one external source.
type Fetcher interface {
	Source() Source
	FetchTransfers(ctx context.Context) ([]Transfer, error)
}

// WalletTransaction is a recorded Transfer. (Source, ExternalID) is unique.
type WalletTransaction struct {
	ID         string
	Source     Source
	ExternalID string
	Direction  Direction
	Amount     decimal.Decimal
	Currency   string
	OccurredAt time.Time
	CreatedAt  time.Time

	// Joined fields
	BalanceTransactionID *string
}
