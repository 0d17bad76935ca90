// Package validate checks a generated fund flow against the chart of
// accounts that was its generation context.
package validate

import (
	"fmt"

	"github.com/ledgerbench-dev/ledgerbench/internal/model"
)

// Kind classifies a violation.
type Kind string

const (
	KindUnknownAccountReference Kind = "unknown_account_reference"
	KindInsufficientEntries     Kind = "insufficient_entries"
	KindNonPositiveAmount       Kind = "non_positive_amount"
	KindUnbalancedTransaction   Kind = "unbalanced_transaction"
)

// Violation describes a single invariant violation. Transaction is the
// index of the offending transaction; Entry is the offending entry index,
// or -1 for transaction-level violations.
type Violation struct {
	Kind        Kind
	Transaction int
	Entry       int
	AccountID   string
	Description string
}

func (v Violation) Error() string {
	if v.Entry >= 0 {
		return fmt.Sprintf("%s [txn %d, entry %d]: %s", v.Kind, v.Transaction, v.Entry, v.Description)
	}
	return fmt.Sprintf("%s [txn %d]: %s", v.Kind, v.Transaction, v.Description)
}

// FundFlow runs every check over every transaction. No check
// short-circuits: all violations found are returned, referential checks
// first, then structural checks, then balance checks, each in transaction
// order. The result is deterministic for a given input.
func FundFlow(chart model.ChartOfAccounts, flow model.FundFlow) []Violation {
	var violations []Violation
	names := chart.NameSet()

	// Referential integrity: every entry references a chart account.
	for ti, txn := range flow.Transactions {
		for ei, entry := range txn.Entries {
			if !names[entry.AccountID] {
				violations = append(violations, Violation{
					Kind:        KindUnknownAccountReference,
					Transaction: ti,
					Entry:       ei,
					AccountID:   entry.AccountID,
					Description: fmt.Sprintf("unknown account %q", entry.AccountID),
				})
			}
		}
	}

	// Structure: a transaction has at least two entries, and every amount
	// is strictly positive. A negative amount would otherwise let a pair of
	// negated entries balance.
	for ti, txn := range flow.Transactions {
		if len(txn.Entries) < 2 {
			violations = append(violations, Violation{
				Kind:        KindInsufficientEntries,
				Transaction: ti,
				Entry:       -1,
				Description: fmt.Sprintf("%d entries, need at least 2", len(txn.Entries)),
			})
		}
		for ei, entry := range txn.Entries {
			if !entry.Amount.IsPositive() {
				violations = append(violations, Violation{
					Kind:        KindNonPositiveAmount,
					Transaction: ti,
					Entry:       ei,
					AccountID:   entry.AccountID,
					Description: fmt.Sprintf("amount %s is not positive", entry.Amount.String()),
				})
			}
		}
	}

	// Balance law: debits equal credits per currency, exact decimals.
	for ti, txn := range flow.Transactions {
		totals := txn.Totals()
		for _, currency := range txn.Currencies() {
			ct := totals[currency]
			if !ct.Debit.Equal(ct.Credit) {
				violations = append(violations, Violation{
					Kind:        KindUnbalancedTransaction,
					Transaction: ti,
					Entry:       -1,
					Description: fmt.Sprintf("%s: debits (%s) != credits (%s)", currency, ct.Debit.String(), ct.Credit.String()),
				})
			}
		}
	}

	return violations
}
