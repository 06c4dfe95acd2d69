package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/dto"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
)

// useTempStore points every file the CLI touches at a temp dir.
func useTempStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TASKTRACKER_DATABASE_PATH", filepath.Join(dir, "tasks.db"))
	t.Setenv("TASKTRACKER_AUDIT_PATH", filepath.Join(dir, "task_manager.log"))
	t.Setenv("TASKTRACKER_EXPORT_PATH", filepath.Join(dir, "tasks.ics"))
	t.Setenv("TASKTRACKER_REMINDER_ENABLED", "false")
	t.Setenv("TASKTRACKER_LOGGER_LEVEL", "error")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_TaskLifecycle(t *testing.T) {
	dir := useTempStore(t)

	out, err := execute(t, "", "user", "add", "Bob", "--role", "member")
	require.NoError(t, err)
	assert.Equal(t, "User 2 added.\n", out)

	out, err = execute(t, "", "task", "add", "-d", "Write report", "-c", "work", "--due", "2024-06-01", "--assign", "2")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 added.\n", out)

	_, err = execute(t, "", "task", "add", "-d", "Done soon", "--due", "2024-06-02")
	require.NoError(t, err)

	_, err = execute(t, "", "task", "complete", "2")
	require.NoError(t, err)

	out, err = execute(t, "", "task", "list", "--json")
	require.NoError(t, err)
	var resp dto.TaskListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "Bob", resp.Tasks[0].Assignee)
	assert.Equal(t, "Work", string(resp.Tasks[0].Category))
	assert.True(t, resp.Tasks[1].Completed)

	out, err = execute(t, "", "--as", "2", "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Done soon")

	out, err = execute(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 events)")

	data, err := os.ReadFile(filepath.Join(dir, "tasks.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "UID:1@taskmanagercli")
	assert.NotContains(t, string(data), "Done soon")

	audit, err := os.ReadFile(filepath.Join(dir, "task_manager.log"))
	require.NoError(t, err)
	assert.Contains(t, string(audit), "User added: Bob at ")
	assert.Contains(t, string(audit), "Task added: Write report by user 1 at ")
}

func TestCLI_UpdateAndDelete(t *testing.T) {
	useTempStore(t)

	_, err := execute(t, "", "task", "add", "-d", "Draft", "--due", "2024-06-01")
	require.NoError(t, err)

	out, err := execute(t, "", "task", "update", "1", "-d", "Final", "--due", "2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 updated.\n", out)

	_, err = execute(t, "", "task", "update", "1", "-d", "")
	assert.True(t, apperrors.IsValidation(err))

	out, err = execute(t, "", "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Final")
	assert.Contains(t, out, "2024-07-01")

	_, err = execute(t, "", "task", "delete", "1")
	require.NoError(t, err)

	_, err = execute(t, "", "task", "delete", "1")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Code(err))

	_, err = execute(t, "", "task", "delete", "abc")
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.Code(err))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.EqualError(t, err, `invalid input: task ID "abc"`)
}

func TestCLI_AddTaskValidation(t *testing.T) {
	useTempStore(t)

	_, err := execute(t, "", "task", "add", "-d", "Bad", "--due", "06/01/2024")
	assert.True(t, apperrors.IsValidation(err))

	_, err = execute(t, "", "task", "add", "-d", "Nobody", "--due", "2024-06-01", "--assign", "42")
	assert.True(t, apperrors.IsValidation(err))

	_, err = execute(t, "", "user", "add", "Eve", "--role", "owner")
	assert.True(t, apperrors.IsValidation(err))
}

func TestCLI_UserList(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "", "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin User")
	assert.Contains(t, out, "Admin")
}

func TestCLI_ShellIsDefault(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "3\nAlice\n1\n2\n8\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Task Manager CLI")
	assert.Contains(t, out, "User 2 added.")
	assert.Contains(t, out, "No tasks found.")
}

func TestCLI_ShellWithRemindersSharesOutput(t *testing.T) {
	useTempStore(t)
	t.Setenv("TASKTRACKER_REMINDER_ENABLED", "true")
	t.Setenv("TASKTRACKER_REMINDER_INTERVAL", "5ms")

	today := time.Now().Format("2006-01-02")
	_, err := execute(t, "", "task", "add", "-d", "Pay rent", "--due", today)
	require.NoError(t, err)

	out, err := execute(t, "2\n2\n2\n8\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Reminder: Task 'Pay rent' is due today!")
	assert.Equal(t, 3, strings.Count(out, strings.Repeat("-", 90)))
}

func TestCLI_RemindOnce(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "", "remind")
	require.NoError(t, err)
	assert.Equal(t, "No tasks due today.\n", out)
}

func TestCLI_GenerateWithoutKey(t *testing.T) {
	useTempStore(t)
	t.Setenv("TASKTRACKER_OPENAI_API_KEY", "")

	_, err := execute(t, "", "task", "generate", "buy milk tomorrow")
	assert.Equal(t, apperrors.ErrCodeServiceUnavailable, apperrors.Code(err))
}
