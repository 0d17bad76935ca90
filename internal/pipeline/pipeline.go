// Package pipeline runs the two-step generation: chart of accounts first,
// then a fund flow constrained by and validated against that chart.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbench-dev/ledgerbench/internal/cases"
	"github.com/ledgerbench-dev/ledgerbench/internal/llm"
	"github.com/ledgerbench-dev/ledgerbench/internal/model"
	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
	"github.com/ledgerbench-dev/ledgerbench/internal/validate"
)

// Stage names the pipeline step where a run failed.
type Stage string

const (
	StageChart    Stage = "chart_of_accounts"
	StageFundFlow Stage = "fund_flow"
)

// InvalidChartError is returned when step-1 output is schema-conformant
// but structurally invalid (empty chart, duplicate account names). Step 2
// is never attempted after it.
type InvalidChartError struct {
	Reason error
}

func (e *InvalidChartError) Error() string {
	return fmt.Sprintf("invalid chart of accounts: %v", e.Reason)
}

func (e *InvalidChartError) Unwrap() error { return e.Reason }

// Result is the structured outcome of one run, handed to the harness for
// reporting. A failed run carries the stage and error; a completed run
// carries the chart, the flow, and any validation violations.
type Result struct {
	RunID      string
	Case       string
	Model      string
	Chart      *model.ChartOfAccounts
	Flow       *model.FundFlow
	Violations []validate.Violation
	Stage      Stage
	Err        error
	Duration   time.Duration
}

// Succeeded reports whether the run completed with no error and no
// validation violations.
func (r Result) Succeeded() bool {
	return r.Err == nil && len(r.Violations) == 0
}

// Runner drives one client through the two-step pipeline.
type Runner struct {
	Client llm.Client
	Model  string
}

// Run executes both steps in fixed order. Step 1 generates and validates
// the chart; step 2 runs only after a structurally valid chart exists and
// feeds the chart back into the prompt. No retries, no internal
// concurrency: two sequential blocking calls.
func (r *Runner) Run(ctx context.Context, tc cases.Case) (res Result) {
	res = Result{RunID: uuid.NewString(), Case: tc.Name, Model: r.Model}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	raw, err := r.Client.Generate(ctx, tc.ChartPrompt, schema.ChartOfAccountsSchema())
	if err != nil {
		res.Stage, res.Err = StageChart, err
		return res
	}
	var chart model.ChartOfAccounts
	if err := json.Unmarshal(raw, &chart); err != nil {
		res.Stage, res.Err = StageChart, fmt.Errorf("decoding chart: %w", err)
		return res
	}
	if err := chart.Validate(); err != nil {
		res.Stage, res.Err = StageChart, &InvalidChartError{Reason: err}
		return res
	}
	res.Chart = &chart

	raw, err = r.Client.Generate(ctx, flowPrompt(tc.FlowPrompt, chart), schema.FundFlowSchema())
	if err != nil {
		res.Stage, res.Err = StageFundFlow, err
		return res
	}
	var flow model.FundFlow
	if err := json.Unmarshal(raw, &flow); err != nil {
		res.Stage, res.Err = StageFundFlow, fmt.Errorf("decoding fund flow: %w", err)
		return res
	}
	res.Flow = &flow

	res.Violations = validate.FundFlow(chart, flow)
	return res
}

// flowPrompt combines the caller-supplied fund-flow prompt with a
// serialized rendering of the step-1 chart.
func flowPrompt(prompt string, chart model.ChartOfAccounts) string {
	rendered, _ := json.MarshalIndent(chart, "", "  ")
	return fmt.Sprintf(`%s

Use only the following chart of accounts. Every entry's account_id must be
the exact name of one of these accounts:
%s`, prompt, rendered)
}
