package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbanting/budgettool/internal/period"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
records:
  dir: records
  granularity: monthly
  active_period: 2025-08
display:
  width: 100
  page_height: 30
  numbered: true
git:
  auto_commit: true
  author_name: Jo
  author_email: jo@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "records", cfg.Records.Dir)
	assert.Equal(t, period.Monthly, cfg.Granularity())
	assert.Equal(t, 100, cfg.Display.Width)
	assert.True(t, cfg.Git.AutoCommit)

	p, ok := cfg.ActivePeriod()
	require.True(t, ok)
	assert.Equal(t, period.Period{Year: 2025, Month: 8}, p)
}

func TestActivePeriodEmpty(t *testing.T) {
	cfg := Default("records")
	_, ok := cfg.ActivePeriod()
	assert.False(t, ok)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing dir", "records:\n  granularity: monthly\n"},
		{"bad granularity", "records:\n  dir: r\n  granularity: weekly\n"},
		{"bad active period", "records:\n  dir: r\n  granularity: monthly\n  active_period: nope\n"},
		{"width too small", "records:\n  dir: r\n  granularity: monthly\ndisplay:\n  width: 5\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default("my-records")
	cfg.Records.ActivePeriod = "2025-01"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default("records").Validate())
}

func TestYearlyGranularity(t *testing.T) {
	path := writeConfig(t, "records:\n  dir: r\n  granularity: yearly\n  active_period: \"2025\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, period.Yearly, cfg.Granularity())

	p, ok := cfg.ActivePeriod()
	require.True(t, ok)
	assert.Equal(t, period.Period{Year: 2025}, p)
}
