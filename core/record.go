package core

import (
	"fmt"
	"reflect"
	"sort"
)

// Record is a local row a graph node is synced onto
type Record interface {
	Get(column string) (any, bool)
	Set(column string, value any)

	// Original returns the column value as it was last loaded or persisted.
	Original(column string) (any, bool)

	// Attributes returns a copy of all current column values.
	Attributes() map[string]any

	// Dirty returns the columns whose value changed since the last load or save.
	Dirty() map[string]any

	Exists() bool

	// MarkPersisted records that the current attributes are now stored.
	MarkPersisted()
}

// Row is the map-backed Record used by the bundled adapters
type Row struct {
	attributes map[string]any
	original   map[string]any
	exists     bool
}

// NewRow creates an empty record that does not exist in the store yet
func NewRow() *Row {
	return &Row{
		attributes: make(map[string]any),
		original:   make(map[string]any),
	}
}

// LoadRow creates a record from column values read from the store
func LoadRow(columns map[string]any) *Row {
	row := NewRow()
	for column, value := range columns {
		row.attributes[column] = value
		row.original[column] = value
	}
	row.exists = true
	return row
}

func (r *Row) Get(column string) (any, bool) {
	value, ok := r.attributes[column]
	return value, ok
}

func (r *Row) Set(column string, value any) {
	r.attributes[column] = value
}

func (r *Row) Original(column string) (any, bool) {
	value, ok := r.original[column]
	return value, ok
}

func (r *Row) Attributes() map[string]any {
	attributes := make(map[string]any, len(r.attributes))
	for column, value := range r.attributes {
		attributes[column] = value
	}
	return attributes
}

func (r *Row) Dirty() map[string]any {
	dirty := make(map[string]any)
	for column, value := range r.attributes {
		original, ok := r.original[column]
		if !ok || !equivalent(original, value) {
			dirty[column] = value
		}
	}
	return dirty
}

// IsDirty reports whether any column changed since the last load or save
func (r *Row) IsDirty() bool {
	return len(r.Dirty()) > 0
}

func (r *Row) Exists() bool {
	return r.exists
}

func (r *Row) MarkPersisted() {
	r.original = r.Attributes()
	r.exists = true
}

// Columns returns the attribute names in sorted order
func (r *Row) Columns() []string {
	columns := make([]string, 0, len(r.attributes))
	for column := range r.attributes {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

// equivalent treats values read back from a store as unchanged when their
// textual form matches, so "42" assigned over an INTEGER 42 is not dirty.
func equivalent(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
