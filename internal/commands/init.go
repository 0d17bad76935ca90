package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerbench-dev/ledgerbench/internal/config"
)

const exampleCase = `name: digital-wallet-deposit
description: A user deposits funds into a digital wallet.
chart_of_accounts_prompt: |
  Generate a chart of accounts for a digital wallet that holds user funds
  in a pooled FBO bank account, denominated in USD. Include the bank
  account and a liability account per user balance.
fund_flow_prompt: |
  Generate the fund flow for a user depositing 100 USD into their wallet.
  Two or more balanced double-entry transactions covering the deposit
  end-to-end.
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new benchmark directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	cfg := config.Default()

	for _, d := range []string{cfg.CasesDir, cfg.OutputDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, "ledgerbench.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	casePath := filepath.Join(dir, cfg.CasesDir, "digital-wallet-deposit.yaml")
	if err := os.WriteFile(casePath, []byte(exampleCase), 0o644); err != nil {
		return fmt.Errorf("writing example case: %w", err)
	}

	fmt.Printf("Initialized ledgerbench at %s\n", dir)
	return nil
}
