package commands

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/export"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/metrics"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"gorm.io/gorm"
)

// app holds everything a command needs once startup has succeeded.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	audit    *logger.AuditLog
	db       *gorm.DB
	registry *prometheus.Registry
	metrics  *metrics.Recorder
	service  *services.TaskService
	exporter *export.CalendarExporter
	actingID uint64
}

// openApp loads configuration, opens the store and initializes the task
// service. Any failure here is fatal to the command.
func openApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: appLogger}

	a.audit, err = logger.OpenAudit(cfg.Audit.Path)
	if err != nil {
		a.close()
		return nil, err
	}

	a.db, err = database.Connect(cfg.Database)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(a.db); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.NewRecorder(a.registry)
	a.service = services.NewTaskService(
		repository.NewTaskRepository(a.db),
		repository.NewUserRepository(a.db),
		a.audit,
		services.WithMetrics(a.metrics),
	)
	if err := a.service.Init(); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize task service: %w", err)
	}

	a.exporter = export.NewCalendarExporter(cfg.Export.ProductID, cfg.Export.UIDDomain)

	a.actingID = cfg.Session.ActingUserID
	if opts.actingUserID != 0 {
		a.actingID = opts.actingUserID
	}
	a.actingID, err = services.TrustedAuthenticator{}.Authenticate(a.actingID)
	if err != nil {
		a.close()
		return nil, err
	}

	appLogger.Debugw("Task tracker ready",
		"driver", cfg.Database.Driver,
		"acting_user_id", a.actingID,
		"users", len(a.service.Users()),
		"tasks", len(a.service.Tasks()),
	)
	return a, nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	if a.audit != nil {
		errs = append(errs, a.audit.Close())
	}
	if a.log != nil {
		// Syncing stderr fails on some platforms; not worth reporting.
		_ = a.log.Close()
	}
	return errors.Join(errs...)
}
