package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the tracker's Prometheus counters. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	taskOps    *prometheus.CounterVec
	usersAdded prometheus.Counter
	reminders  prometheus.Counter
	exports    prometheus.Counter
}

// NewRecorder creates the counters and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		taskOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasktracker_task_operations_total",
				Help: "Task mutations by operation",
			},
			[]string{"operation"},
		),
		usersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_users_added_total",
			Help: "Users added",
		}),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_reminders_fired_total",
			Help: "Reminders emitted for tasks due today",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_calendar_exports_total",
			Help: "Calendar exports written",
		}),
	}

	reg.MustRegister(r.taskOps, r.usersAdded, r.reminders, r.exports)
	return r
}

func (r *Recorder) TaskOperation(op string) {
	if r == nil {
		return
	}
	r.taskOps.WithLabelValues(op).Inc()
}

func (r *Recorder) UserAdded() {
	if r == nil {
		return
	}
	r.usersAdded.Inc()
}

func (r *Recorder) ReminderFired() {
	if r == nil {
		return
	}
	r.reminders.Inc()
}

func (r *Recorder) CalendarExported() {
	if r == nil {
		return
	}
	r.exports.Inc()
}
