// Package runid generates and parses benchmark batch identifiers.
package runid

import (
	"fmt"
	"strings"
	"time"
)

const layout = "20060102-150405"

// New returns a batch ID like "20250830-143022" for the given start time.
// One batch covers every (case, model) run of a single invocation.
func New(t time.Time) string {
	return t.UTC().Format(layout)
}

// Parse recovers the start time from a batch ID.
func Parse(id string) (time.Time, error) {
	t, err := time.Parse(layout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid batch ID %q: %w", id, err)
	}
	return t, nil
}

// Filename returns the results filename for a batch, e.g.
// "run-20250830-143022.csv".
func Filename(id string) string {
	return "run-" + id + ".csv"
}

// FromFilename recovers the batch ID from a results filename.
func FromFilename(name string) (string, error) {
	id := strings.TrimSuffix(strings.TrimPrefix(name, "run-"), ".csv")
	if _, err := Parse(id); err != nil {
		return "", err
	}
	return id, nil
}
