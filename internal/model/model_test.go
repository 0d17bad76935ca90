package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usdChart() ChartOfAccounts {
	return ChartOfAccounts{Accounts: []Account{
		{Name: "FBO Bank Account", Description: "Pooled user funds", Currency: "USD", NormalBalance: NormalBalanceDebit},
		{Name: "User 1 Liability", Description: "Balance owed to user 1", Currency: "USD", NormalBalance: NormalBalanceCredit},
	}}
}

func TestChartValidate_OK(t *testing.T) {
	assert.NoError(t, usdChart().Validate())
}

func TestChartValidate_Empty(t *testing.T) {
	err := ChartOfAccounts{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestChartValidate_DuplicateName(t *testing.T) {
	chart := usdChart()
	chart.Accounts = append(chart.Accounts, Account{Name: "User 1 Liability", Currency: "USD", NormalBalance: NormalBalanceCredit})
	err := chart.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"User 1 Liability"`)
}

func TestChartValidate_EmptyName(t *testing.T) {
	chart := ChartOfAccounts{Accounts: []Account{{Name: "", Currency: "USD"}}}
	assert.Error(t, chart.Validate())
}

func TestChartNameSet(t *testing.T) {
	names := usdChart().NameSet()
	assert.True(t, names["FBO Bank Account"])
	assert.False(t, names["User 2 Liability"])
	assert.True(t, usdChart().Contains("User 1 Liability"))
}

func TestIsBalanced(t *testing.T) {
	txn := Transaction{
		Description: "User deposit",
		Entries: []Entry{
			{AccountID: "FBO Bank Account", Amount: dec("100"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "User 1 Liability", Amount: dec("100"), Direction: DirectionCredit, Currency: "USD"},
		},
	}
	assert.True(t, txn.IsBalanced())
}

func TestIsBalanced_Unbalanced(t *testing.T) {
	txn := Transaction{
		Entries: []Entry{
			{AccountID: "FBO Bank Account", Amount: dec("100"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "User 1 Liability", Amount: dec("90"), Direction: DirectionCredit, Currency: "USD"},
		},
	}
	assert.False(t, txn.IsBalanced())
}

func TestIsBalanced_ExactDecimals(t *testing.T) {
	// 0.1 + 0.2 must equal 0.3 exactly; floats would disagree.
	txn := Transaction{
		Entries: []Entry{
			{AccountID: "a", Amount: dec("0.1"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "a", Amount: dec("0.2"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "b", Amount: dec("0.3"), Direction: DirectionCredit, Currency: "USD"},
		},
	}
	assert.True(t, txn.IsBalanced())
}

func TestIsBalanced_PerCurrency(t *testing.T) {
	txn := Transaction{
		Entries: []Entry{
			{AccountID: "a", Amount: dec("100"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "b", Amount: dec("100"), Direction: DirectionCredit, Currency: "USD"},
			{AccountID: "c", Amount: dec("80"), Direction: DirectionDebit, Currency: "EUR"},
			{AccountID: "d", Amount: dec("80"), Direction: DirectionCredit, Currency: "EUR"},
		},
	}
	assert.True(t, txn.IsBalanced())

	// A currency present on only one side is an imbalance for that currency.
	txn.Entries = append(txn.Entries, Entry{AccountID: "e", Amount: dec("5"), Direction: DirectionDebit, Currency: "GBP"})
	assert.False(t, txn.IsBalanced())
}

func TestTotals(t *testing.T) {
	txn := Transaction{
		Entries: []Entry{
			{AccountID: "a", Amount: dec("60"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "a", Amount: dec("40"), Direction: DirectionDebit, Currency: "USD"},
			{AccountID: "b", Amount: dec("90"), Direction: DirectionCredit, Currency: "USD"},
		},
	}
	totals := txn.Totals()
	require.Contains(t, totals, "USD")
	assert.True(t, totals["USD"].Debit.Equal(dec("100")))
	assert.True(t, totals["USD"].Credit.Equal(dec("90")))
	assert.Equal(t, []string{"USD"}, txn.Currencies())
}
