package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/models"
)

func TestWrite_SkipsCompletedTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Description: "Submit report", DueDate: "2024-06-01"},
		{ID: 2, Description: "Old chore", DueDate: "2024-05-01", Completed: true},
	}

	var buf bytes.Buffer
	count, err := NewCalendarExporter("", "").Write(&buf, tasks)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "BEGIN:VCALENDAR\n" +
		"VERSION:2.0\n" +
		"PRODID:-//TaskManagerCLI//EN\n" +
		"BEGIN:VEVENT\n" +
		"UID:1@taskmanagercli\n" +
		"DTSTART:20240601T000000\n" +
		"SUMMARY:Submit report\n" +
		"END:VEVENT\n" +
		"END:VCALENDAR\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 1, strings.Count(buf.String(), "BEGIN:VEVENT"))
}

func TestWrite_EmptyCalendar(t *testing.T) {
	var buf bytes.Buffer
	count, err := NewCalendarExporter("-//Acme//EN", "acme").Write(&buf, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Acme//EN\nEND:VCALENDAR\n", buf.String())
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.ics")
	exporter := NewCalendarExporter("", "")

	_, err := exporter.WriteFile(path, []models.Task{
		{ID: 1, Description: "first", DueDate: "2024-06-01"},
		{ID: 2, Description: "second", DueDate: "2024-06-02"},
	})
	require.NoError(t, err)

	_, err = exporter.WriteFile(path, []models.Task{{ID: 3, Description: "third", DueDate: "2024-06-03"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first")
	assert.Contains(t, string(data), "UID:3@taskmanagercli")
}

func TestStartStamp(t *testing.T) {
	assert.Equal(t, "20240601T000000", StartStamp("2024-06-01"))
	assert.Equal(t, "20241399T000000", StartStamp("2024-13-99"))
}
