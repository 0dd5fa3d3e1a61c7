package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preslavrachev/graphsync/core"
)

// Profile describes how graph nodes of one kind are stored locally
//
//	resource: FacebookUser
//	table: facebook_users
//	aliases:
//	  id: facebook_user_id
//	  name: full_name
//	ignore_fields: [email]
type Profile struct {
	Resource     string            `yaml:"resource"`
	Table        string            `yaml:"table"`
	PrimaryKey   string            `yaml:"primary_key"`
	Aliases      map[string]string `yaml:"aliases"`
	IgnoreFields []string          `yaml:"ignore_fields"`
}

// LoadProfile reads a YAML sync profile from path
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	profile, err := ParseProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

// ParseProfile decodes a YAML sync profile
func ParseProfile(raw []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Validate checks the profile names a resource and maps fields to real columns
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Resource) == "" {
		return fmt.Errorf("resource is required")
	}
	for field, column := range p.Aliases {
		if strings.TrimSpace(column) == "" {
			return fmt.Errorf("alias for field %q has an empty column", field)
		}
	}
	return nil
}

// Register adds the profile's resource to registry
func (p *Profile) Register(registry *core.Registry) *core.Resource {
	builder := registry.Register(p.Resource).
		WithAliases(p.Aliases).
		WithIgnoredFields(p.IgnoreFields...)
	if p.Table != "" {
		builder.WithTable(p.Table)
	}
	if p.PrimaryKey != "" {
		builder.WithPrimaryKey(p.PrimaryKey)
	}
	return builder.Resource()
}
