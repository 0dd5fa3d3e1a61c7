package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preslavrachev/graphsync/core"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GRAPHSYNC_DB_DRIVER", "")
	t.Setenv("GRAPHSYNC_DB_DSN", "")
	t.Setenv("GRAPHSYNC_PROFILE", "")
	t.Setenv("DEBUG", "")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "graphsync.db", cfg.Database.DSN)
	assert.Empty(t, cfg.ProfilePath)
	assert.False(t, cfg.DebugEnabled)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("GRAPHSYNC_DB_DRIVER", "postgres")
	t.Setenv("GRAPHSYNC_DB_DSN", "postgres://localhost/graph?sslmode=disable")
	t.Setenv("GRAPHSYNC_PROFILE", "profiles/users.yaml")
	t.Setenv("DEBUG", "true")

	cfg := LoadConfig()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/graph?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, "profiles/users.yaml", cfg.ProfilePath)
	assert.True(t, cfg.DebugEnabled)
}

func TestLoadConfig_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("DEBUG", "sometimes")

	assert.False(t, LoadConfig().DebugEnabled)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{DebugEnabled: true})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile([]byte(`
resource: FacebookUser
table: fb_users
primary_key: pk
aliases:
  id: facebook_user_id
  "location[city]": city
ignore_fields:
  - email
`))
	require.NoError(t, err)

	assert.Equal(t, "FacebookUser", profile.Resource)
	assert.Equal(t, "fb_users", profile.Table)
	assert.Equal(t, map[string]string{"id": "facebook_user_id", "location[city]": "city"}, profile.Aliases)
	assert.Equal(t, []string{"email"}, profile.IgnoreFields)

	registry := core.NewRegistry()
	resource := profile.Register(registry)

	assert.Equal(t, "fb_users", resource.TableName)
	assert.Equal(t, "pk", resource.PrimaryKey)
	assert.Equal(t, "facebook_user_id", resource.GraphNodeKeyName())
	assert.True(t, resource.IsIgnored("email"))

	_, ok := registry.GetResource("FacebookUser")
	assert.True(t, ok)
}

func TestParseProfile_DerivesTable(t *testing.T) {
	profile, err := ParseProfile([]byte("resource: FacebookPage\n"))
	require.NoError(t, err)

	resource := profile.Register(core.NewRegistry())
	assert.Equal(t, "facebook_pages", resource.TableName)
	assert.Equal(t, "id", resource.GraphNodeKeyName())
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing resource", "table: users\n"},
		{"empty alias column", "resource: FacebookUser\naliases:\n  name: \"\"\n"},
		{"malformed yaml", "resource: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resource: FacebookUser\n"), 0o600))

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "FacebookUser", profile.Resource)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
