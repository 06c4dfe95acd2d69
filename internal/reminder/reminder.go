package reminder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/metrics"
	"github.com/yukikurage/task-tracker/internal/models"
	"go.uber.org/zap/zapcore"
)

const DefaultInterval = 60 * time.Second

// Reminder is one "due today" notice for a task.
type Reminder struct {
	TaskID      uint64
	Description string
}

func (r Reminder) Message() string {
	return fmt.Sprintf("Reminder: Task '%s' is due today!", r.Description)
}

// TaskSource yields a read-only snapshot of the current tasks.
type TaskSource interface {
	Tasks() []models.Task
}

// Notifier receives reminders as they fire.
type Notifier interface {
	Notify(r Reminder)
}

// WriterNotifier prints each reminder on its own line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(r Reminder) {
	fmt.Fprintln(n.W, r.Message())
}

// SyncWriter serializes writes to w. Wrap a stream the scheduler shares with
// another goroutine, such as the shell's output.
func SyncWriter(w io.Writer) io.Writer {
	return zapcore.Lock(zapcore.AddSync(w))
}

// Check returns a reminder for every incomplete task due on now's local
// calendar day. Overdue tasks do not match.
func Check(tasks []models.Task, now time.Time) []Reminder {
	today := now.Format(constants.DateLayout)

	var due []Reminder
	for _, task := range tasks {
		if !task.Completed && task.DueDate == today {
			due = append(due, Reminder{TaskID: task.ID, Description: task.Description})
		}
	}
	return due
}

// Scheduler runs Check on a fixed interval until its context is cancelled.
// Nothing is remembered between ticks, so a matching task is reminded on
// every tick of its due day.
type Scheduler struct {
	source   TaskSource
	notifier Notifier
	audit    *logger.AuditLog
	log      *logger.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
}

// Config carries the Scheduler's optional collaborators.
type Config struct {
	Interval time.Duration
	Audit    *logger.AuditLog
	Logger   *logger.Logger
	Metrics  *metrics.Recorder
	Now      func() time.Time
}

func NewScheduler(source TaskSource, notifier Notifier, cfg Config) *Scheduler {
	s := &Scheduler{
		source:   source,
		notifier: notifier,
		audit:    cfg.Audit,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		interval: cfg.Interval,
		now:      cfg.Now,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.audit == nil {
		s.audit = logger.NopAudit()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Tick performs one check against a fresh snapshot and emits every match.
func (s *Scheduler) Tick() []Reminder {
	now := s.now()
	due := Check(s.source.Tasks(), now)
	for _, r := range due {
		s.notifier.Notify(r)
		s.audit.Record(now, "Reminder sent for task %d", r.TaskID)
		s.metrics.ReminderFired()
	}
	return due
}

// Run ticks once immediately and then every interval. It returns ctx.Err()
// once ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debugw("Reminder loop started", "interval", s.interval)
	defer s.log.Debugw("Reminder loop stopped")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Start runs the scheduler in a goroutine. The returned function cancels
// it and waits for it to exit.
func (s *Scheduler) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}
