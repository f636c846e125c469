package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeExchange Type = "exchange"
	TypeAgency   Type = "agency"
)

func (t Type) IsValid() bool {
	return t == TypeExchange || t == TypeAgency
}

type Balance struct {
	ID            string
	Type          Type
	Code          string
	Name          string
	CurrentAmount decimal.Decimal
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TransactionType string

const (
	TransactionTopUp    TransactionType = "top_up"
	TransactionSpend    TransactionType = "spend"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTopUp, TransactionSpend, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Effect is the signed change a transaction of this type and amount makes to a balance.
// Top-ups credit; every other type debits.
func (t TransactionType) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTopUp {
		return amount
	}
	return amount.Neg()
}

// Transaction is one ledger entry. Amount is always positive; the sign comes from Type.
type Transaction struct {
	ID          string
	BalanceID   string
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description *string

	// Owner links. At most one is set; linked entries are managed by their owner.
	ExpenseID           *string
	DailyMetricsID      *string
	WalletTransactionID *string

	CreatedAt time.Time

	// Joined fields
	BalanceCode *string
}

func (t Transaction) Effect() decimal.Decimal {
	return t.Type.Effect(t.Amount)
}

// IsLinked reports whether the entry belongs to an expense, metrics row or wallet transfer.
func (t Transaction) IsLinked() bool {
	return t.ExpenseID != nil || t.DailyMetricsID != nil || t.WalletTransactionID != nil
}

type LinkKind string

const (
	LinkExpense           LinkKind = "expense"
	LinkDailyMetrics      LinkKind = "daily_metrics"
	LinkWalletTransaction LinkKind = "wallet_transaction"
)

// Link identifies the owner of a group of ledger entries.
type Link struct {
	Kind LinkKind
	ID   string
}

func ExpenseLink(id string) Link           { return Link{Kind: LinkExpense, ID: id} }
func DailyMetricsLink(id string) Link      { return Link{Kind: LinkDailyMetrics, ID: id} }
func WalletTransactionLink(id string) Link { return Link{Kind: LinkWalletTransaction, ID: id} }

// Apply stamps the link onto t.
func (l Link) Apply(t *Transaction) {
	id := l.ID
	switch l.Kind {
	case LinkExpense:
		t.ExpenseID = &id
	case LinkDailyMetrics:
		t.DailyMetricsID = &id
	case LinkWalletTransaction:
		t.WalletTransactionID = &id
	}
}

// Posting is a ledger entry requested by another service, addressed by balance code.
type Posting struct {
	BalanceCode string
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Link        *Link
}
