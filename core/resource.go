package core

// GraphNodeIDField is the graph node field that identifies the external object
const GraphNodeIDField = "id"

// Resource represents a registered local record type graph nodes are synced onto
type Resource struct {
	Name      string `json:"name"`
	TableName string `json:"table_name"`

	// PrimaryKey is the column identifying an existing row on update.
	// Empty means the graph node key column.
	PrimaryKey string `json:"primary_key"`

	// Aliases maps flattened graph node field names to local column names.
	Aliases map[string]string `json:"aliases"`

	// IgnoreFields lists top-level graph node fields dropped before syncing.
	IgnoreFields []string `json:"ignore_fields"`
}

// FieldToColumnName converts a graph node field name to a database column name.
// Fields without an alias keep their name.
func (r *Resource) FieldToColumnName(field string) string {
	if r == nil || r.Aliases == nil {
		return field
	}
	if column, ok := r.Aliases[field]; ok {
		return column
	}
	return field
}

// GraphNodeKeyName returns the column holding the graph node id
func (r *Resource) GraphNodeKeyName() string {
	return r.FieldToColumnName(GraphNodeIDField)
}

// GetPrimaryKey returns the column used to address an existing row
func (r *Resource) GetPrimaryKey() string {
	if r != nil && r.PrimaryKey != "" {
		return r.PrimaryKey
	}
	return r.GraphNodeKeyName()
}

// IsIgnored reports whether a top-level graph node field is dropped
func (r *Resource) IsIgnored(field string) bool {
	if r == nil {
		return false
	}
	for _, ignored := range r.IgnoreFields {
		if ignored == field {
			return true
		}
	}
	return false
}

// RemoveIgnoredFields returns a copy of data without the ignored top-level fields
func (r *Resource) RemoveIgnoredFields(data map[string]any) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		if r.IsIgnored(key) {
			continue
		}
		result[key] = value
	}
	return result
}
