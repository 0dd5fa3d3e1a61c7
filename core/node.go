package core

// Node is a graph node handed to a Syncer. Raw field maps are passed as
// Fields; SDK objects satisfy it by exposing their array conversion.
type Node interface {
	AsArray() map[string]any
}

// Fields is a raw graph node as decoded from the Graph API
type Fields map[string]any

// AsArray returns the fields unchanged
func (f Fields) AsArray() map[string]any {
	return map[string]any(f)
}

// normalizeNode converts any Node into a plain field map
func normalizeNode(data Node) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	fields := data.AsArray()
	if fields == nil {
		return map[string]any{}
	}
	return fields
}
