package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerbench-dev/ledgerbench/internal/model"
	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
	"github.com/ledgerbench-dev/ledgerbench/internal/validate"
)

func newCheckCommand() *cobra.Command {
	var chartPath string
	var flowPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a saved chart and fund flow offline, without calling any provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(chartPath, flowPath)
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "", "chart of accounts JSON file (required)")
	_ = cmd.MarkFlagRequired("chart")
	cmd.Flags().StringVar(&flowPath, "flow", "", "fund flow JSON file (required)")
	_ = cmd.MarkFlagRequired("flow")

	return cmd
}

func runCheck(chartPath, flowPath string) error {
	chartData, err := os.ReadFile(chartPath)
	if err != nil {
		return fmt.Errorf("reading chart: %w", err)
	}
	if problems := schema.Check(schema.ChartOfAccountsSchema(), chartData); len(problems) > 0 {
		return reportProblems("chart does not conform to schema", problems)
	}
	var chart model.ChartOfAccounts
	if err := json.Unmarshal(chartData, &chart); err != nil {
		return fmt.Errorf("decoding chart: %w", err)
	}
	if err := chart.Validate(); err != nil {
		return fmt.Errorf("invalid chart of accounts: %w", err)
	}

	flowData, err := os.ReadFile(flowPath)
	if err != nil {
		return fmt.Errorf("reading fund flow: %w", err)
	}
	if problems := schema.Check(schema.FundFlowSchema(), flowData); len(problems) > 0 {
		return reportProblems("fund flow does not conform to schema", problems)
	}
	var flow model.FundFlow
	if err := json.Unmarshal(flowData, &flow); err != nil {
		return fmt.Errorf("decoding fund flow: %w", err)
	}

	violations := validate.FundFlow(chart, flow)
	if len(violations) > 0 {
		fmt.Printf("⚠️  %d violation(s):\n", len(violations))
		for _, v := range violations {
			fmt.Printf("   - %s\n", v.Error())
		}
		return fmt.Errorf("%d validation violation(s)", len(violations))
	}

	fmt.Println("✅ chart and fund flow are valid")
	return nil
}

func reportProblems(header string, problems []string) error {
	fmt.Printf("❌ %s:\n", header)
	for _, p := range problems {
		fmt.Printf("   - %s\n", p)
	}
	return fmt.Errorf("%s", header)
}
