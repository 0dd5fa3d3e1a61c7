package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Syncer inserts or updates graph nodes as local records of one resource
type Syncer struct {
	adapter  Adapter
	resource *Resource
	logger   *zap.Logger
}

// Option configures a Syncer
type Option func(*Syncer)

// WithLogger sets the logger used for sync diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSyncer creates a Syncer writing through adapter. A nil resource syncs
// with no aliases and no ignored fields.
func NewSyncer(adapter Adapter, resource *Resource, opts ...Option) *Syncer {
	if resource == nil {
		resource = &Resource{}
	}
	s := &Syncer{
		adapter:  adapter,
		resource: resource,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resource returns the resource the Syncer writes to
func (s *Syncer) Resource() *Resource {
	return s.resource
}

// CreateOrUpdateGraphNode inserts or updates the graph node in the local store
// and returns the saved record. A node without an id after ignored fields are
// removed fails with ErrInvalidArgument before the store is touched. Adapter
// errors are returned unchanged.
func (s *Syncer) CreateOrUpdateGraphNode(ctx context.Context, data Node) (Record, error) {
	fields := s.resource.RemoveIgnoredFields(normalizeNode(data))
	flattened := FlattenGraphNode(fields)

	id, ok := flattened[GraphNodeIDField]
	if !ok {
		return nil, NewInvalidArgumentError(GraphNodeIDField, "graph node id is missing")
	}

	keyName := s.GraphNodeKeyName()
	log := s.logger.With(
		zap.String("sync_id", uuid.NewString()),
		zap.String("resource", s.resource.Name),
		zap.String("graph_node_id", id),
	)

	record, err := s.FirstOrNewGraphNode(ctx, map[string]any{keyName: id})
	if err != nil {
		log.Debug("graph node lookup failed", zap.Error(err))
		return nil, err
	}

	s.MapGraphNodeFieldNamesToDatabaseColumnNames(record, flattened)

	existed := record.Exists()
	if err := s.adapter.Save(ctx, s.resource, record); err != nil {
		log.Debug("graph node save failed", zap.Error(err))
		return nil, err
	}

	log.Debug("synced graph node",
		zap.String("key_column", keyName),
		zap.Bool("created", !existed),
		zap.Int("fields", len(flattened)),
	)
	return record, nil
}

// FirstOrNewGraphNode finds the record matching attributes or instantiates a
// new one. Unlike a mass-assigning first-or-new, attributes are only used
// for the lookup.
func (s *Syncer) FirstOrNewGraphNode(ctx context.Context, attributes map[string]any) (Record, error) {
	record, err := s.adapter.FirstOrNew(ctx, s.resource, attributes)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = NewRow()
	}
	return record, nil
}

// FieldToColumnName converts a graph node field name to a database column name
func (s *Syncer) FieldToColumnName(field string) string {
	return s.resource.FieldToColumnName(field)
}

// GraphNodeKeyName returns the database column of the graph node id
func (s *Syncer) GraphNodeKeyName() string {
	return s.resource.GraphNodeKeyName()
}

// MapGraphNodeFieldNamesToDatabaseColumnNames assigns every flattened field
// to record under its column name
func (s *Syncer) MapGraphNodeFieldNamesToDatabaseColumnNames(record Record, fields map[string]string) {
	for field, value := range fields {
		record.Set(s.FieldToColumnName(field), value)
	}
}
