package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAccount = `{
	"name": "FBO Bank Account",
	"description": "Pooled user funds",
	"currency": "USD",
	"normal_balance": "debit"
}`

func TestCheck_ValidAccount(t *testing.T) {
	assert.Empty(t, Check(AccountSchema(), []byte(validAccount)))
}

func TestCheck_InvalidJSON(t *testing.T) {
	problems := Check(AccountSchema(), []byte("not json"))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "invalid JSON")
}

func TestCheck_MissingRequiredField(t *testing.T) {
	doc := `{"name": "x", "description": "y", "currency": "USD"}`
	problems := Check(AccountSchema(), []byte(doc))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], `missing required field "normal_balance"`)
}

func TestCheck_EnumOutsideSet(t *testing.T) {
	doc := `{"name": "x", "description": "y", "currency": "USD", "normal_balance": "sideways"}`
	problems := Check(AccountSchema(), []byte(doc))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], `"sideways"`)
}

func TestCheck_WrongPrimitiveType(t *testing.T) {
	doc := `{"name": 42, "description": "y", "currency": "USD", "normal_balance": "debit"}`
	problems := Check(AccountSchema(), []byte(doc))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "$.name")
	assert.Contains(t, problems[0], "expected string")
}

func TestCheck_TopLevelTypeMismatch(t *testing.T) {
	problems := Check(AccountSchema(), []byte(`[1, 2]`))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "expected object, got array")
}

func TestCheck_NestedArrayElement(t *testing.T) {
	doc := `{"accounts": [
		{"name": "a", "description": "d", "currency": "USD", "normal_balance": "debit"},
		{"name": "b", "description": "d", "currency": "USD"}
	]}`
	problems := Check(ChartOfAccountsSchema(), []byte(doc))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "$.accounts[1]")
	assert.Contains(t, problems[0], "normal_balance")
}

func TestCheck_CollectsAllProblems(t *testing.T) {
	doc := `{"name": 42, "currency": "USD", "normal_balance": "sideways"}`
	problems := Check(AccountSchema(), []byte(doc))
	// missing description, name wrong type, enum violation
	assert.Len(t, problems, 3)
}

func TestCheck_FundFlowNumbers(t *testing.T) {
	doc := `{"transactions": [{
		"description": "deposit",
		"entries": [
			{"account_id": "a", "amount": 100.50, "direction": "debit", "currency": "USD"},
			{"account_id": "b", "amount": "100.50", "direction": "credit", "currency": "USD"}
		]
	}]}`
	problems := Check(FundFlowSchema(), []byte(doc))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "$.transactions[0].entries[1].amount")
	assert.Contains(t, problems[0], "expected number, got string")
}
