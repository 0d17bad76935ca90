package runid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParse(t *testing.T) {
	start := time.Date(2025, 8, 30, 14, 30, 22, 0, time.UTC)
	id := New(start)
	assert.Equal(t, "20250830-143022", id)

	parsed, err := Parse(id)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(start))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not-a-batch")
	assert.Error(t, err)
}

func TestFilenameRoundtrip(t *testing.T) {
	id := "20250830-143022"
	name := Filename(id)
	assert.Equal(t, "run-20250830-143022.csv", name)

	back, err := FromFilename(name)
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestFromFilename_Invalid(t *testing.T) {
	_, err := FromFilename("summary.csv")
	assert.Error(t, err)
}
