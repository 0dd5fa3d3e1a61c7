package core

import "context"

// Adapter defines the interface for persistence adapters backing a Syncer
type Adapter interface {
	// FirstOrNew looks up the first record whose columns equal attributes,
	// or returns a new unsaved record when none matches. The attributes are
	// used for the lookup only and are never assigned to the new record.
	FirstOrNew(ctx context.Context, resource *Resource, attributes map[string]any) (Record, error)

	// Save inserts a new record or writes the dirty columns of an existing one.
	Save(ctx context.Context, resource *Resource, record Record) error
}
