package model

import "fmt"

// NormalBalance records whether an account's balance grows with debit or
// credit entries.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "debit"
	NormalBalanceCredit NormalBalance = "credit"
)

// Account is a single ledger account generated in step 1.
// Its name is its identity within a chart and the key entries reference.
type Account struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Currency      string        `json:"currency"`
	NormalBalance NormalBalance `json:"normal_balance"`
}

// ChartOfAccounts is an ordered set of accounts; order is generation order.
type ChartOfAccounts struct {
	Accounts []Account `json:"accounts"`
}

// Validate checks structural validity: at least one account, every name
// non-empty, no two accounts sharing a name.
func (c ChartOfAccounts) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("chart of accounts is empty")
	}
	seen := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		if a.Name == "" {
			return fmt.Errorf("account %d has an empty name", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate account name %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// NameSet returns the account names as a lookup set.
func (c ChartOfAccounts) NameSet() map[string]bool {
	names := make(map[string]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		names[a.Name] = true
	}
	return names
}

// Contains reports whether an account with the given name exists.
func (c ChartOfAccounts) Contains(name string) bool {
	for _, a := range c.Accounts {
		if a.Name == name {
			return true
		}
	}
	return false
}
