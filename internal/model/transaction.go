package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Direction marks which side of a transaction an entry sits on.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Entry is one side of a double-entry posting. AccountID must name an
// account in the chart that was the generation context.
type Entry struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
	Currency  string          `json:"currency"`
}

// Transaction is one business event with at least two entries.
type Transaction struct {
	Description string  `json:"description"`
	Entries     []Entry `json:"entries"`
}

// FundFlow is the ordered set of transactions for one business process.
type FundFlow struct {
	Transactions []Transaction `json:"transactions"`
}

// CurrencyTotals holds the debit and credit sums for one currency.
type CurrencyTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Totals sums debits and credits per currency using exact decimals.
func (t Transaction) Totals() map[string]CurrencyTotals {
	totals := make(map[string]CurrencyTotals)
	for _, e := range t.Entries {
		ct := totals[e.Currency]
		switch e.Direction {
		case DirectionDebit:
			ct.Debit = ct.Debit.Add(e.Amount)
		case DirectionCredit:
			ct.Credit = ct.Credit.Add(e.Amount)
		}
		totals[e.Currency] = ct
	}
	return totals
}

// Currencies returns the currencies present among the entries, sorted.
func (t Transaction) Currencies() []string {
	totals := t.Totals()
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

// IsBalanced reports whether debits equal credits for every currency
// present among the entries. Decimal equality, not within-epsilon.
func (t Transaction) IsBalanced() bool {
	for _, ct := range t.Totals() {
		if !ct.Debit.Equal(ct.Credit) {
			return false
		}
	}
	return true
}
