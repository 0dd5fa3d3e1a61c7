package sql

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SQLLogger provides GORM-style SQL debug logging on top of zap
type SQLLogger struct {
	enabled bool
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewSQLLogger creates a new SQL logger. A nil logger discards output.
func NewSQLLogger(logger *zap.Logger, enabled bool) *SQLLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLLogger{
		enabled: enabled,
		logger:  logger.Named("sql"),
	}
}

// IsEnabled returns whether SQL logging is enabled
func (l *SQLLogger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables SQL logging
func (l *SQLLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogQuery logs a SELECT query with execution time and row count
func (l *SQLLogger) LogQuery(query string, args []any, duration time.Duration, rowCount int) {
	if !l.IsEnabled() {
		return
	}

	l.logger.Info(l.formatQuery(query),
		durationField(duration),
		zap.Int("rows", rowCount),
		zap.String("args", l.formatArgs(args)))
}

// LogExec logs an INSERT/UPDATE query with execution time and affected rows
func (l *SQLLogger) LogExec(query string, args []any, duration time.Duration, result sql.Result) {
	if !l.IsEnabled() {
		return
	}

	fields := []zap.Field{durationField(duration)}
	if result != nil {
		if affected, err := result.RowsAffected(); err == nil {
			fields = append(fields, zap.Int64("rows", affected))
		}
	}
	fields = append(fields, zap.String("args", l.formatArgs(args)))

	l.logger.Info(l.formatQuery(query), fields...)
}

// LogError logs a query that resulted in an error
func (l *SQLLogger) LogError(query string, args []any, duration time.Duration, err error) {
	if !l.IsEnabled() {
		return
	}

	l.logger.Error(l.formatQuery(query),
		durationField(duration),
		zap.String("args", l.formatArgs(args)),
		zap.Error(err))
}

func durationField(duration time.Duration) zap.Field {
	return zap.Float64("duration_ms", float64(duration.Nanoseconds())/1e6)
}

// formatQuery cleans up the SQL query for better readability
func (l *SQLLogger) formatQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// formatArgs formats the query arguments for logging
func (l *SQLLogger) formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			formatted = append(formatted, fmt.Sprintf(`"%s"`, v))
		case nil:
			formatted = append(formatted, "NULL")
		default:
			formatted = append(formatted, fmt.Sprintf("%v", v))
		}
	}

	return "[" + strings.Join(formatted, ", ") + "]"
}
