package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/yukikurage/task-tracker/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger for diagnostic output.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a diagnostic logger writing to stderr.
func New(cfg config.LoggerConfig) (*Logger, error) {
	var zapConfig zap.Config
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.DisableStacktrace = true
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With("component", component)}
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}

// ctimeLayout matches the classic ctime(3) rendering, e.g. "Sat Oct 17 09:04:05 2026".
const ctimeLayout = "Mon Jan _2 15:04:05 2006"

// AuditLog is an append-only record of user-visible actions, one line per
// action, ending in a human-readable timestamp.
type AuditLog struct {
	logger *zap.Logger
	file   *os.File
}

// OpenAudit opens (or creates) the audit file in append mode.
func OpenAudit(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", path, err)
	}
	return &AuditLog{logger: zap.New(auditCore(zapcore.AddSync(f))), file: f}, nil
}

// NewAudit builds an audit log over an arbitrary sink. Used by tests.
func NewAudit(ws zapcore.WriteSyncer) *AuditLog {
	return &AuditLog{logger: zap.New(auditCore(ws))}
}

// NopAudit discards audit lines.
func NopAudit() *AuditLog {
	return &AuditLog{logger: zap.NewNop()}
}

func auditCore(ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, zapcore.InfoLevel)
}

// Record writes "<action> at <timestamp>".
func (a *AuditLog) Record(at time.Time, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Info(msg + " at " + at.Format(ctimeLayout))
}

// Close flushes and closes the underlying file, if any.
func (a *AuditLog) Close() error {
	_ = a.logger.Sync()
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}
