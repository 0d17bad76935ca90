// Package report renders benchmark results for the console.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ledgerbench-dev/ledgerbench/internal/pipeline"
)

// displayPrecision rounds durations for console output.
const displayPrecision = 10 * time.Millisecond

// Outcome classifies a result for reporting: "pass" when generation and
// validation both succeeded, "invalid" when generation succeeded but
// validation found violations, "error" when a stage failed outright.
func Outcome(res pipeline.Result) string {
	switch {
	case res.Err != nil:
		return "error"
	case len(res.Violations) > 0:
		return "invalid"
	default:
		return "pass"
	}
}

// PrintResult writes one line per run, with violation or error details
// indented beneath it.
func PrintResult(w io.Writer, res pipeline.Result) {
	switch Outcome(res) {
	case "pass":
		accounts, txns := 0, 0
		if res.Chart != nil {
			accounts = len(res.Chart.Accounts)
		}
		if res.Flow != nil {
			txns = len(res.Flow.Transactions)
		}
		fmt.Fprintf(w, "✅ %s / %s: %d accounts, %d transactions (%s)\n",
			res.Case, res.Model, accounts, txns, res.Duration.Round(displayPrecision))
	case "invalid":
		fmt.Fprintf(w, "⚠️  %s / %s: %d violation(s)\n", res.Case, res.Model, len(res.Violations))
		for _, v := range res.Violations {
			fmt.Fprintf(w, "   - %s\n", v.Error())
		}
	case "error":
		fmt.Fprintf(w, "❌ %s / %s: failed at %s: %v\n", res.Case, res.Model, res.Stage, res.Err)
	}
}

// PrintSummary writes per-model totals after all runs complete.
func PrintSummary(w io.Writer, results []pipeline.Result) {
	type tally struct {
		pass, invalid, failed int
	}
	tallies := make(map[string]*tally)
	var order []string
	for _, res := range results {
		t, ok := tallies[res.Model]
		if !ok {
			t = &tally{}
			tallies[res.Model] = t
			order = append(order, res.Model)
		}
		switch Outcome(res) {
		case "pass":
			t.pass++
		case "invalid":
			t.invalid++
		default:
			t.failed++
		}
	}

	fmt.Fprintf(w, "\n%-30s %6s %8s %7s\n", "model", "pass", "invalid", "error")
	for _, m := range order {
		t := tallies[m]
		fmt.Fprintf(w, "%-30s %6d %8d %7d\n", m, t.pass, t.invalid, t.failed)
	}
}
