package core

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Registry holds the resources graph nodes can be synced onto
type Registry struct {
	resources     map[string]*Resource
	resourceOrder []string // Track registration order for consistent listing
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		resources:     make(map[string]*Resource),
		resourceOrder: make([]string, 0),
	}
}

// Register registers a resource by name and returns a builder to configure it.
// Registering the same name again replaces the earlier resource.
func (reg *Registry) Register(name string) *ResourceBuilder {
	name = strings.TrimSpace(name)
	if name == "" {
		panic("Register expects a non-empty resource name")
	}

	resource := &Resource{
		Name:      name,
		TableName: generateTableName(name),
		Aliases:   make(map[string]string),
	}

	if _, exists := reg.resources[name]; !exists {
		reg.resourceOrder = append(reg.resourceOrder, name)
	}
	reg.resources[name] = resource

	return &ResourceBuilder{
		registry: reg,
		resource: resource,
	}
}

// GetResource retrieves a registered resource by name
func (reg *Registry) GetResource(name string) (*Resource, bool) {
	resource, exists := reg.resources[name]
	return resource, exists
}

// GetResources returns all registered resources in registration order
func (reg *Registry) GetResources() []*Resource {
	ordered := make([]*Resource, 0, len(reg.resourceOrder))
	for _, name := range reg.resourceOrder {
		if resource, exists := reg.resources[name]; exists {
			ordered = append(ordered, resource)
		}
	}
	return ordered
}

// Syncer returns a Syncer for the named resource
func (reg *Registry) Syncer(name string, adapter Adapter, opts ...Option) (*Syncer, error) {
	resource, exists := reg.GetResource(name)
	if !exists {
		return nil, fmt.Errorf("resource %q is not registered", name)
	}
	return NewSyncer(adapter, resource, opts...), nil
}

// ResourceBuilder provides fluent API for resource configuration
type ResourceBuilder struct {
	registry *Registry
	resource *Resource
}

// WithTable sets the table the resource is stored in
func (rb *ResourceBuilder) WithTable(table string) *ResourceBuilder {
	rb.resource.TableName = table
	return rb
}

// WithPrimaryKey sets the column addressing existing rows on update
func (rb *ResourceBuilder) WithPrimaryKey(column string) *ResourceBuilder {
	rb.resource.PrimaryKey = column
	return rb
}

// WithAlias maps a flattened graph node field to a column
func (rb *ResourceBuilder) WithAlias(field, column string) *ResourceBuilder {
	rb.resource.Aliases[field] = column
	return rb
}

// WithAliases maps several flattened graph node fields to columns
func (rb *ResourceBuilder) WithAliases(aliases map[string]string) *ResourceBuilder {
	for field, column := range aliases {
		rb.resource.Aliases[field] = column
	}
	return rb
}

// WithIgnoredFields drops top-level graph node fields before syncing
func (rb *ResourceBuilder) WithIgnoredFields(fields ...string) *ResourceBuilder {
	for _, field := range fields {
		if !rb.resource.IsIgnored(field) {
			rb.resource.IgnoreFields = append(rb.resource.IgnoreFields, field)
		}
	}
	return rb
}

// Resource returns the configured resource
func (rb *ResourceBuilder) Resource() *Resource {
	return rb.resource
}

func generateTableName(name string) string {
	// Convert to snake_case and pluralize
	snake := strcase.ToSnake(name)
	return pluralize(snake)
}

// Basic pluralization - can be enhanced later
func pluralize(word string) string {
	if strings.HasSuffix(word, "y") && !strings.HasSuffix(word, "ay") &&
		!strings.HasSuffix(word, "ey") && !strings.HasSuffix(word, "oy") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	if strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") ||
		strings.HasSuffix(word, "z") || strings.HasSuffix(word, "ch") ||
		strings.HasSuffix(word, "sh") {
		return word + "es"
	}
	return word + "s"
}
