package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "tasks.db", cfg.Database.Path)
	assert.Equal(t, "tasks.ics", cfg.Export.Path)
	assert.Equal(t, "-//TaskManagerCLI//EN", cfg.Export.ProductID)
	assert.Equal(t, "task_manager.log", cfg.Audit.Path)
	assert.Equal(t, 60*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, uint64(1), cfg.Session.ActingUserID)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TASKTRACKER_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("TASKTRACKER_REMINDER_INTERVAL", "5s")
	t.Setenv("TASKTRACKER_SESSION_ACTING_USER_ID", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, uint64(7), cfg.Session.ActingUserID)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "export:\n  path: out.ics\nlogger:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out.ics", cfg.Export.Path)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("TASKTRACKER_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MySQLRequiresDSN(t *testing.T) {
	t.Setenv("TASKTRACKER_DATABASE_DRIVER", "mysql")

	_, err := Load("")
	assert.ErrorContains(t, err, "database.dsn")
}
