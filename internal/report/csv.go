package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ledgerbench-dev/ledgerbench/internal/pipeline"
)

var csvHeader = []string{"case", "model", "outcome", "stage", "violations", "duration_ms", "detail"}

// WriteCSV writes one row per run for spreadsheet comparison across models.
func WriteCSV(w io.Writer, results []pipeline.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, res := range results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		} else if len(res.Violations) > 0 {
			detail = res.Violations[0].Error()
		}
		row := []string{
			res.Case,
			res.Model,
			Outcome(res),
			string(res.Stage),
			strconv.Itoa(len(res.Violations)),
			strconv.FormatInt(res.Duration.Milliseconds(), 10),
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
