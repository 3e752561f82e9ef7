package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pss", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schedule_file: /var/lib/pss/tasks.json
week_start: sunday
log_level: shouty
excerpt:
  format: json
  period: fortnight
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pss/tasks.json", cfg.ScheduleFile)
	assert.Equal(t, time.Sunday, cfg.FirstWeekday())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 7, cfg.HorizonDays)
	assert.Equal(t, "json", cfg.Excerpt.Format)
	assert.Equal(t, "week", cfg.Excerpt.Period)
	assert.Equal(t, "excerpt.ics", cfg.Excerpt.Path)
	assert.Equal(t, "*/15 * * * *", cfg.Excerpt.RefreshCron)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.HorizonDays = 30
	cfg.Excerpt.Period = "month"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon_days: [1"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
	_, err = Load("")
	assert.Error(t, err)
}
