// Package schema defines the JSON schemas handed to generation backends and
// a strict conformance check applied to whatever comes back.
package schema

// Schema describes the expected shape of a generated JSON value. It follows
// JSON Schema conventions so it can be marshaled directly into prompts or
// passed to backends with native structured-output support.
type Schema struct {
	Type        string              `json:"type"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
	Items       *Schema             `json:"items,omitempty"`
}

// Property describes a single field of an object schema.
type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Items       *Schema             `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

// AccountSchema describes a single ledger account.
func AccountSchema() *Schema {
	return &Schema{
		Type:        "object",
		Title:       "LedgerAccount",
		Description: "A ledger account for tracking financial transactions.",
		Properties: map[string]Property{
			"name": {
				Type:        "string",
				Description: "Short name of the account",
			},
			"description": {
				Type:        "string",
				Description: "Longer description of how the account is intended to be used",
			},
			"currency": {
				Type:        "string",
				Description: "The currency of the account",
			},
			"normal_balance": {
				Type:        "string",
				Description: "Whether the account is credit-normal or debit-normal. Acceptable values are either credit or debit.",
				Enum:        []string{"credit", "debit"},
			},
		},
		Required: []string{"name", "description", "currency", "normal_balance"},
	}
}

// ChartOfAccountsSchema describes the step-1 target: an ordered list of
// accounts wrapped in an object.
func ChartOfAccountsSchema() *Schema {
	account := AccountSchema()
	return &Schema{
		Type:        "object",
		Title:       "ChartOfAccounts",
		Description: "The complete set of ledger accounts for a business scenario.",
		Properties: map[string]Property{
			"accounts": {
				Type:        "array",
				Description: "The ledger accounts, in the order they should be displayed",
				Items:       account,
			},
		},
		Required: []string{"accounts"},
	}
}

// FundFlowSchema describes the step-2 target: an ordered list of
// double-entry transactions.
func FundFlowSchema() *Schema {
	entry := &Schema{
		Type:        "object",
		Title:       "Entry",
		Description: "One side of a double-entry posting.",
		Properties: map[string]Property{
			"account_id": {
				Type:        "string",
				Description: "Name of the ledger account this entry posts to. Must be an account from the chart of accounts.",
			},
			"amount": {
				Type:        "number",
				Description: "Positive amount of the entry",
			},
			"direction": {
				Type:        "string",
				Description: "Whether this entry debits or credits the account",
				Enum:        []string{"debit", "credit"},
			},
			"currency": {
				Type:        "string",
				Description: "The currency of the entry",
			},
		},
		Required: []string{"account_id", "amount", "direction", "currency"},
	}
	transaction := &Schema{
		Type:        "object",
		Title:       "Transaction",
		Description: "A balanced double-entry transaction.",
		Properties: map[string]Property{
			"description": {
				Type:        "string",
				Description: "What this transaction represents",
			},
			"entries": {
				Type:        "array",
				Description: "At least two entries; debits must equal credits per currency",
				Items:       entry,
			},
		},
		Required: []string{"description", "entries"},
	}
	return &Schema{
		Type:        "object",
		Title:       "FundFlow",
		Description: "The ordered set of transactions representing one business process.",
		Properties: map[string]Property{
			"transactions": {
				Type:        "array",
				Description: "The transactions in business-process order",
				Items:       transaction,
			},
		},
		Required: []string{"transactions"},
	}
}
