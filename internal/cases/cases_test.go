package cases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depositCase = `name: deposit
description: User deposits into a wallet.
chart_of_accounts_prompt: Generate a chart of accounts for a digital wallet.
fund_flow_prompt: Generate the fund flow for a 100 USD deposit.
`

func writeCase(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCase(t, t.TempDir(), "deposit.yaml", depositCase)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deposit", c.Name)
	assert.Contains(t, c.ChartPrompt, "chart of accounts")
	assert.Contains(t, c.FlowPrompt, "100 USD")
}

func TestLoad_NameDefaultsToFilename(t *testing.T) {
	content := "chart_of_accounts_prompt: a\nfund_flow_prompt: b\n"
	path := writeCase(t, t.TempDir(), "wallet-refund.yaml", content)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wallet-refund", c.Name)
}

func TestLoad_MissingPrompt(t *testing.T) {
	path := writeCase(t, t.TempDir(), "bad.yaml", "name: bad\nchart_of_accounts_prompt: a\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fund_flow_prompt")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "b-case.yaml", "chart_of_accounts_prompt: a\nfund_flow_prompt: b\n")
	writeCase(t, dir, "a-case.yml", "chart_of_accounts_prompt: a\nfund_flow_prompt: b\n")
	writeCase(t, dir, "notes.txt", "not a case")

	loaded, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a-case", loaded[0].Name)
	assert.Equal(t, "b-case", loaded[1].Name)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no case files")
}
