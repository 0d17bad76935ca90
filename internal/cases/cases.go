// Package cases loads benchmark test cases from YAML files.
package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is one benchmark scenario: two opaque natural-language prompts, one
// per pipeline step.
type Case struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	ChartPrompt string `yaml:"chart_of_accounts_prompt"`
	FlowPrompt  string `yaml:"fund_flow_prompt"`
}

// Load reads a single case file. A missing name defaults to the filename
// without extension.
func Load(path string) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Case{}, fmt.Errorf("reading case: %w", err)
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Case{}, fmt.Errorf("parsing case %s: %w", path, err)
	}
	if c.Name == "" {
		base := filepath.Base(path)
		c.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if c.ChartPrompt == "" {
		return Case{}, fmt.Errorf("case %s: chart_of_accounts_prompt is required", path)
	}
	if c.FlowPrompt == "" {
		return Case{}, fmt.Errorf("case %s: fund_flow_prompt is required", path)
	}
	return c, nil
}

// LoadDir loads every .yaml/.yml file in dir, in filename order.
func LoadDir(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading cases dir: %w", err)
	}

	var loaded []Case
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		c, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, c)
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("no case files found in %s", dir)
	}
	return loaded, nil
}
