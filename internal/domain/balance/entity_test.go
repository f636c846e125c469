package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeEffect(t *testing.T) {
	amount := decimal.NewFromInt(250)

	assert.True(t, TransactionTopUp.Effect(amount).Equal(decimal.NewFromInt(250)))
	assert.True(t, TransactionSpend.Effect(amount).Equal(decimal.NewFromInt(-250)))
	assert.True(t, TransactionExpense.Effect(amount).Equal(decimal.NewFromInt(-250)))
	assert.True(t, TransactionTransfer.Effect(amount).Equal(decimal.NewFromInt(-250)))
}

func TestEffectAndInverseCancel(t *testing.T) {
	start := decimal.RequireFromString("1000.55")
	for _, typ := range []TransactionType{TransactionTopUp, TransactionSpend, TransactionExpense, TransactionTransfer} {
		tx := Transaction{Type: typ, Amount: decimal.RequireFromString("99.99")}
		after := start.Add(tx.Effect()).Sub(tx.Effect())
		assert.True(t, after.Equal(start), string(typ))
	}
}

func TestLinkApply(t *testing.T) {
	var tx Transaction
	assert.False(t, tx.IsLinked())

	ExpenseLink("exp-1").Apply(&tx)
	assert.True(t, tx.IsLinked())
	assert.Equal(t, "exp-1", *tx.ExpenseID)
	assert.Nil(t, tx.DailyMetricsID)

	var other Transaction
	WalletTransactionLink("w-1").Apply(&other)
	assert.Equal(t, "w-1", *other.WalletTransactionID)
}
