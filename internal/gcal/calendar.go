package gcal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/models"
	"google.golang.org/api/calendar/v3"
)

// TaskIDProperty is the private extended property linking an event to a task.
const TaskIDProperty = "tasktracker_id"

// Client pushes tasks into one Google calendar.
type Client struct {
	srv        *calendar.Service
	calendarID string
	log        *logger.Logger
}

func NewClient(srv *calendar.Service, calendarID string, log *logger.Logger) *Client {
	if calendarID == "" {
		calendarID = "primary"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{srv: srv, calendarID: calendarID, log: log.WithComponent("gcal")}
}

// SyncResult counts what a Sync did.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
}

// Sync pushes every pending task as an all-day event. Completed tasks are
// skipped and their existing events are left alone. The first failure
// aborts the run.
func (c *Client) Sync(ctx context.Context, tasks []models.Task) (SyncResult, error) {
	var result SyncResult
	for _, task := range tasks {
		if task.Completed {
			continue
		}

		created, updated, err := c.SyncTask(ctx, task)
		if err != nil {
			return result, fmt.Errorf("failed to sync task %d: %w", task.ID, err)
		}
		switch {
		case created:
			result.Created++
		case updated:
			result.Updated++
		default:
			result.Unchanged++
		}
	}
	return result, nil
}

// SyncTask creates the task's event, or patches it when it has drifted.
func (c *Client) SyncTask(ctx context.Context, task models.Task) (created, updated bool, err error) {
	event, err := TaskToEvent(task)
	if err != nil {
		return false, false, err
	}

	existing, err := c.EventByTaskID(ctx, task.ID)
	if err != nil {
		return false, false, fmt.Errorf("error searching for event: %w", err)
	}

	if existing == nil {
		if _, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
			return false, false, err
		}
		c.log.Debugw("Event created", "task_id", task.ID)
		return true, false, nil
	}

	if !eventNeedsUpdate(existing, event) {
		return false, false, nil
	}
	if _, err := c.srv.Events.Patch(c.calendarID, existing.Id, event).Context(ctx).Do(); err != nil {
		return false, false, err
	}
	c.log.Debugw("Event patched", "task_id", task.ID, "event_id", existing.Id)
	return false, true, nil
}

// EventByTaskID finds the event tagged with taskID, or nil.
func (c *Client) EventByTaskID(ctx context.Context, taskID uint64) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%d", TaskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

// TaskToEvent renders a task as an all-day event on its due date.
func TaskToEvent(task models.Task) (*calendar.Event, error) {
	due, err := time.Parse(constants.DateLayout, task.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q for task %d: %w", task.DueDate, task.ID, err)
	}

	return &calendar.Event{
		Summary:     task.Description,
		Description: fmt.Sprintf("Category: %s\nPriority: %s", task.Category, task.Priority),
		Start:       &calendar.EventDateTime{Date: due.Format(constants.DateLayout)},
		End:         &calendar.EventDateTime{Date: due.AddDate(0, 0, 1).Format(constants.DateLayout)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: strconv.FormatUint(task.ID, 10)},
		},
	}, nil
}

func eventNeedsUpdate(existing, want *calendar.Event) bool {
	return existing.Summary != want.Summary ||
		existing.Description != want.Description ||
		eventDate(existing.Start) != eventDate(want.Start) ||
		eventDate(existing.End) != eventDate(want.End)
}

func eventDate(dt *calendar.EventDateTime) string {
	if dt == nil {
		return ""
	}
	return dt.Date
}
