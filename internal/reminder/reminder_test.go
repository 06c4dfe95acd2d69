package reminder

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/models"
	"go.uber.org/zap/zapcore"
)

type staticSource []models.Task

func (s staticSource) Tasks() []models.Task { return s }

type recordingNotifier struct {
	mu  sync.Mutex
	got []Reminder
}

func (n *recordingNotifier) Notify(r Reminder) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, r)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.got)
}

var today = time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)

func TestCheck(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Description: "due today", DueDate: "2024-06-01"},
		{ID: 2, Description: "done today", DueDate: "2024-06-01", Completed: true},
		{ID: 3, Description: "overdue", DueDate: "2024-05-31"},
		{ID: 4, Description: "tomorrow", DueDate: "2024-06-02"},
	}

	due := Check(tasks, today)
	require.Len(t, due, 1)
	assert.Equal(t, uint64(1), due[0].TaskID)
	assert.Equal(t, "Reminder: Task 'due today' is due today!", due[0].Message())
}

func TestTick_OneReminderPerInvocation(t *testing.T) {
	var auditBuf bytes.Buffer
	notifier := &recordingNotifier{}
	s := NewScheduler(staticSource{{ID: 7, Description: "pay rent", DueDate: "2024-06-01"}}, notifier, Config{
		Audit: logger.NewAudit(zapcore.AddSync(&auditBuf)),
		Now:   func() time.Time { return today },
	})

	assert.Len(t, s.Tick(), 1)
	assert.Len(t, s.Tick(), 1)
	assert.Equal(t, 2, notifier.count())
	assert.Equal(t, 2, strings.Count(auditBuf.String(), "Reminder sent for task 7 at "))
}

func TestTick_NoMatches(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(staticSource{
		{ID: 1, Description: "done", DueDate: "2024-06-01", Completed: true},
		{ID: 2, Description: "other day", DueDate: "2024-06-03"},
	}, notifier, Config{Now: func() time.Time { return today }})

	assert.Empty(t, s.Tick())
	assert.Zero(t, notifier.count())
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify(Reminder{TaskID: 1, Description: "x"})
	assert.Equal(t, "Reminder: Task 'x' is due today!\n", buf.String())
}

func TestRun_StopsOnCancel(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(staticSource{{ID: 1, Description: "x", DueDate: "2024-06-01"}}, notifier, Config{
		Interval: 5 * time.Millisecond,
		Now:      func() time.Time { return today },
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return notifier.count() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}

func TestStart_StopJoins(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(staticSource{{ID: 1, Description: "x", DueDate: "2024-06-01"}}, notifier, Config{
		Interval: time.Hour,
		Now:      func() time.Time { return today },
	})

	stop := s.Start(context.Background())
	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, time.Millisecond)
	stop()
	assert.Equal(t, 1, notifier.count())
}

func TestSyncWriter_ConcurrentWriters(t *testing.T) {
	var buf bytes.Buffer
	w := SyncWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				WriterNotifier{W: w}.Notify(Reminder{TaskID: 1, Description: "x"})
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 200)
	for _, line := range lines {
		assert.Equal(t, "Reminder: Task 'x' is due today!", line)
	}
}
