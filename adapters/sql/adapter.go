package sql

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/iancoleman/strcase"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/preslavrachev/graphsync/core"
)

// Adapter implements the core.Adapter interface on top of sqlx
type Adapter struct {
	db     *sqlx.DB
	flavor sqlbuilder.Flavor
	logger *SQLLogger
}

// New creates a new SQL adapter. The SQL flavor is picked from the driver name.
func New(db *sqlx.DB) *Adapter {
	return &Adapter{
		db:     db,
		flavor: flavorForDriver(db.DriverName()),
		logger: NewSQLLogger(nil, false), // Default to disabled
	}
}

// NewWithLogger creates a new SQL adapter logging statements through logger
func NewWithLogger(db *sqlx.DB, logger *zap.Logger, debugEnabled bool) *Adapter {
	return &Adapter{
		db:     db,
		flavor: flavorForDriver(db.DriverName()),
		logger: NewSQLLogger(logger, debugEnabled),
	}
}

// SetDebugEnabled enables or disables SQL debug logging
func (a *Adapter) SetDebugEnabled(enabled bool) {
	a.logger.SetEnabled(enabled)
}

// Flavor returns the SQL dialect statements are built for
func (a *Adapter) Flavor() sqlbuilder.Flavor {
	return a.flavor
}

func flavorForDriver(driver string) sqlbuilder.Flavor {
	switch driver {
	case "postgres", "pgx", "cloudsqlpostgres":
		return sqlbuilder.PostgreSQL
	case "mysql":
		return sqlbuilder.MySQL
	default:
		return sqlbuilder.SQLite
	}
}

// loggedExecContext wraps ExecContext with logging
func (a *Adapter) loggedExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := a.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		a.logger.LogError(query, args, duration, err)
		return nil, err
	}

	a.logger.LogExec(query, args, duration, result)
	return result, nil
}

// getTableName returns the resource table, deriving it from the resource name when unset
func (a *Adapter) getTableName(resource *core.Resource) (string, error) {
	if resource == nil {
		return "", fmt.Errorf("resource cannot be nil")
	}
	if resource.TableName != "" {
		return resource.TableName, nil
	}
	if resource.Name == "" {
		return "", fmt.Errorf("resource has neither a table nor a name")
	}

	// Convert resource name to snake_case table name
	return strcase.ToSnake(resource.Name) + "s", nil
}

// FirstOrNew loads the first row matching attributes, or returns a new unsaved row
func (a *Adapter) FirstOrNew(ctx context.Context, resource *core.Resource, attributes map[string]any) (core.Record, error) {
	if len(attributes) == 0 {
		return core.NewRow(), nil
	}

	tableName, err := a.getTableName(resource)
	if err != nil {
		return nil, err
	}

	sb := a.flavor.NewSelectBuilder()
	sb.Select("*").From(a.flavor.Quote(tableName))
	whereConditions := make([]string, 0, len(attributes))
	for _, column := range sortedColumns(attributes) {
		whereConditions = append(whereConditions, sb.Equal(a.flavor.Quote(column), attributes[column]))
	}
	sb.Where(whereConditions...)
	sb.Limit(1)

	query, args := sb.Build()

	start := time.Now()
	rows, err := a.db.QueryxContext(ctx, query, args...)
	if err != nil {
		a.logger.LogError(query, args, time.Since(start), err)
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}
		a.logger.LogQuery(query, args, time.Since(start), 0)
		return core.NewRow(), nil
	}

	columns := make(map[string]any)
	if err := rows.MapScan(columns); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	a.logger.LogQuery(query, args, time.Since(start), 1)

	return core.LoadRow(normalizeColumns(columns)), nil
}

// Save inserts a new row or updates the dirty columns of an existing one
func (a *Adapter) Save(ctx context.Context, resource *core.Resource, record core.Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	tableName, err := a.getTableName(resource)
	if err != nil {
		return err
	}

	if !record.Exists() {
		return a.create(ctx, resource, tableName, record)
	}
	return a.update(ctx, resource, tableName, record)
}

func (a *Adapter) create(ctx context.Context, resource *core.Resource, tableName string, record core.Record) error {
	attributes := record.Attributes()
	if len(attributes) == 0 {
		return fmt.Errorf("failed to create record: no columns to insert")
	}

	columns := sortedColumns(attributes)
	quoted := make([]string, 0, len(columns))
	values := make([]any, 0, len(columns))
	for _, column := range columns {
		quoted = append(quoted, a.flavor.Quote(column))
		values = append(values, attributes[column])
	}

	ib := a.flavor.NewInsertBuilder()
	ib.InsertInto(a.flavor.Quote(tableName))
	ib.Cols(quoted...)
	ib.Values(values...)

	query, args := ib.Build()
	result, err := a.loggedExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	a.assignInsertID(resource, record, result)
	record.MarkPersisted()
	return nil
}

// assignInsertID fills an auto-generated primary key the sync did not set itself
func (a *Adapter) assignInsertID(resource *core.Resource, record core.Record, result sql.Result) {
	primaryKey := resource.GetPrimaryKey()
	if _, ok := record.Get(primaryKey); ok {
		return
	}
	if a.flavor == sqlbuilder.PostgreSQL {
		// LastInsertId is not supported by lib/pq
		return
	}
	if id, err := result.LastInsertId(); err == nil {
		record.Set(primaryKey, id)
	}
}

func (a *Adapter) update(ctx context.Context, resource *core.Resource, tableName string, record core.Record) error {
	dirty := record.Dirty()
	if len(dirty) == 0 {
		// No fields to update
		record.MarkPersisted()
		return nil
	}

	primaryKey := resource.GetPrimaryKey()
	id, ok := record.Original(primaryKey)
	if !ok {
		return fmt.Errorf("failed to update record: no %s value to address the row", primaryKey)
	}

	ub := a.flavor.NewUpdateBuilder()
	ub.Update(a.flavor.Quote(tableName))
	assignments := make([]string, 0, len(dirty))
	for _, column := range sortedColumns(dirty) {
		assignments = append(assignments, ub.Assign(a.flavor.Quote(column), dirty[column]))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal(a.flavor.Quote(primaryKey), id))

	query, args := ub.Build()
	if _, err := a.loggedExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	record.MarkPersisted()
	return nil
}

// normalizeColumns converts driver byte slices into strings
func normalizeColumns(columns map[string]any) map[string]any {
	for column, value := range columns {
		if b, ok := value.([]byte); ok {
			columns[column] = string(b)
		}
	}
	return columns
}

func sortedColumns(values map[string]any) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
