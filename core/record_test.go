package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_NewRowIsNotPersisted(t *testing.T) {
	row := NewRow()
	row.Set("id", "1")

	assert.False(t, row.Exists())
	assert.Equal(t, map[string]any{"id": "1"}, row.Dirty())

	row.MarkPersisted()
	assert.True(t, row.Exists())
	assert.False(t, row.IsDirty())

	original, ok := row.Original("id")
	assert.True(t, ok)
	assert.Equal(t, "1", original)
}

func TestRow_Dirty(t *testing.T) {
	row := LoadRow(map[string]any{"id": "1", "likes": int64(42), "name": "Ann"})

	row.Set("likes", "42")
	row.Set("name", "Annie")
	row.Set("locale", "en_US")

	assert.Equal(t, map[string]any{"name": "Annie", "locale": "en_US"}, row.Dirty())
	assert.Equal(t, []string{"id", "likes", "locale", "name"}, row.Columns())
}

func TestRow_AttributesIsACopy(t *testing.T) {
	row := LoadRow(map[string]any{"id": "1"})

	attributes := row.Attributes()
	attributes["id"] = "2"

	value, _ := row.Get("id")
	assert.Equal(t, "1", value)
}

func TestRow_NilOriginalIsDirty(t *testing.T) {
	row := LoadRow(map[string]any{"bio": nil})
	row.Set("bio", "")

	assert.Equal(t, map[string]any{"bio": ""}, row.Dirty())
}
