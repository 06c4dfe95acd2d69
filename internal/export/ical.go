package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yukikurage/task-tracker/internal/models"
)

const (
	DefaultProductID = "-//TaskManagerCLI//EN"
	DefaultUIDDomain = "taskmanagercli"
)

// CalendarExporter writes pending tasks as an iCalendar document.
type CalendarExporter struct {
	ProductID string
	UIDDomain string
}

func NewCalendarExporter(productID, uidDomain string) *CalendarExporter {
	if productID == "" {
		productID = DefaultProductID
	}
	if uidDomain == "" {
		uidDomain = DefaultUIDDomain
	}
	return &CalendarExporter{ProductID: productID, UIDDomain: uidDomain}
}

// Write emits one VEVENT per incomplete task, in the given order, and
// returns how many events were written.
func (e *CalendarExporter) Write(w io.Writer, tasks []models.Task) (int, error) {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:%s\n", e.ProductID)

	count := 0
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		fmt.Fprintf(bw, "BEGIN:VEVENT\nUID:%s\nDTSTART:%s\nSUMMARY:%s\nEND:VEVENT\n",
			e.UID(task), StartStamp(task.DueDate), task.Description)
		count++
	}

	bw.WriteString("END:VCALENDAR\n")

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}
	return count, nil
}

// WriteFile overwrites path with the calendar for tasks.
func (e *CalendarExporter) WriteFile(path string, tasks []models.Task) (int, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open export file %s: %w", path, err)
	}

	count, err := e.Write(f, tasks)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close export file %s: %w", path, cerr)
	}
	return count, err
}

// UID returns the stable event identifier "<id>@<domain>".
func (e *CalendarExporter) UID(task models.Task) string {
	return fmt.Sprintf("%d@%s", task.ID, e.UIDDomain)
}

// StartStamp turns "2024-06-01" into "20240601T000000".
func StartStamp(dueDate string) string {
	return strings.ReplaceAll(dueDate, "-", "") + "T000000"
}
