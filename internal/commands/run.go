package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ledgerbench-dev/ledgerbench/internal/cases"
	"github.com/ledgerbench-dev/ledgerbench/internal/config"
	"github.com/ledgerbench-dev/ledgerbench/internal/llm"
	"github.com/ledgerbench-dev/ledgerbench/internal/pipeline"
	"github.com/ledgerbench-dev/ledgerbench/internal/report"
	"github.com/ledgerbench-dev/ledgerbench/internal/runid"
	"github.com/ledgerbench-dev/ledgerbench/internal/runlog"
)

func newRunCommand() *cobra.Command {
	var cfgPath string
	var modelFilter string
	var caseFilter string
	var parallel bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all configured models against all test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd.Context(), cfgPath, modelFilter, caseFilter, parallel)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "ledgerbench.yaml", "config file")
	cmd.Flags().StringVar(&modelFilter, "model", "", "run only the named model")
	cmd.Flags().StringVar(&caseFilter, "case", "", "run only the named case")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "fan runs out concurrently")

	return cmd
}

func runBenchmark(ctx context.Context, cfgPath, modelFilter, caseFilter string, parallel bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	testCases, err := cases.LoadDir(cfg.CasesDir)
	if err != nil {
		return err
	}
	if caseFilter != "" {
		testCases = filterCases(testCases, caseFilter)
		if len(testCases) == 0 {
			return fmt.Errorf("no case named %q", caseFilter)
		}
	}

	runners, err := buildRunners(cfg, modelFilter)
	if err != nil {
		return err
	}

	results := execute(ctx, runners, testCases, parallel)

	for _, res := range results {
		report.PrintResult(os.Stdout, res)
	}
	report.PrintSummary(os.Stdout, results)

	return persist(cfg.OutputDir, results)
}

func filterCases(all []cases.Case, name string) []cases.Case {
	var kept []cases.Case
	for _, c := range all {
		if c.Name == name {
			kept = append(kept, c)
		}
	}
	return kept
}

// buildRunners constructs a client per configured model. Models whose
// client cannot be built (usually a missing credential) are skipped with a
// warning so one unconfigured backend does not block the rest.
func buildRunners(cfg *config.Config, modelFilter string) ([]*pipeline.Runner, error) {
	registry := llm.DefaultRegistry()

	var runners []*pipeline.Runner
	for _, mc := range cfg.Models {
		if modelFilter != "" && mc.Name != modelFilter {
			continue
		}
		client, err := registry.New(mc.Provider, llm.Config{
			Model:       mc.Model,
			Temperature: mc.Temperature,
			Endpoint:    mc.Endpoint,
			Region:      mc.Region,
			APIKeyEnv:   mc.APIKeyEnv,
		})
		if err != nil {
			logrus.WithError(err).Warnf("skipping model %s", mc.Name)
			continue
		}
		runners = append(runners, &pipeline.Runner{Client: client, Model: mc.Name})
	}
	if len(runners) == 0 {
		return nil, fmt.Errorf("no usable models")
	}
	return runners, nil
}

// execute runs every (case, model) pair. Pipeline runs share no state, so
// parallel mode simply fans them out; results keep a deterministic order
// either way.
func execute(ctx context.Context, runners []*pipeline.Runner, testCases []cases.Case, parallel bool) []pipeline.Result {
	type job struct {
		runner *pipeline.Runner
		tc     cases.Case
	}
	var jobs []job
	for _, tc := range testCases {
		for _, r := range runners {
			jobs = append(jobs, job{runner: r, tc: tc})
		}
	}

	results := make([]pipeline.Result, len(jobs))
	run := func(i int) {
		j := jobs[i]
		logrus.WithFields(logrus.Fields{"case": j.tc.Name, "model": j.runner.Model}).Info("starting run")
		results[i] = j.runner.Run(ctx, j.tc)
		logrus.WithFields(logrus.Fields{
			"case":     j.tc.Name,
			"model":    j.runner.Model,
			"outcome":  report.Outcome(results[i]),
			"duration": results[i].Duration,
		}).Info("run finished")
	}

	if parallel {
		var wg sync.WaitGroup
		for i := range jobs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				run(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range jobs {
			run(i)
		}
	}
	return results
}

// persist writes the batch results CSV and appends to the run log.
func persist(outputDir string, results []pipeline.Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	now := time.Now()
	batch := runid.New(now)

	f, err := os.Create(filepath.Join(outputDir, runid.Filename(batch)))
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()
	if err := report.WriteCSV(f, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	entries := make([]runlog.Entry, len(results))
	for i, res := range results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		entries[i] = runlog.Entry{
			Timestamp:  now,
			Batch:      batch,
			Case:       res.Case,
			Model:      res.Model,
			RunID:      res.RunID,
			Outcome:    report.Outcome(res),
			Stage:      string(res.Stage),
			Violations: len(res.Violations),
			DurationMS: res.Duration.Milliseconds(),
			Detail:     detail,
		}
	}
	return runlog.Append(outputDir, entries)
}
