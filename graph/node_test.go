package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preslavrachev/graphsync/core"
)

func TestDecode(t *testing.T) {
	node, err := Decode(strings.NewReader(`{
		"id": "10153647843762372",
		"name": "Ann Lee",
		"age_range": {"min": 21},
		"likes": 12345678901234567
	}`))
	require.NoError(t, err)

	assert.Equal(t, "10153647843762372", node.ID())

	likes, ok := node.Field("likes")
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567"), likes)

	assert.Equal(t, map[string]string{
		"id":             "10153647843762372",
		"name":           "Ann Lee",
		"age_range[min]": "21",
		"likes":          "12345678901234567",
	}, core.FlattenGraphNode(node.AsArray()))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"id":`},
		{"not an object", `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecode_GraphError(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"error": {"message": "Invalid OAuth access token.", "type": "OAuthException", "code": 190, "fbtrace_id": "abc"}}`))
	require.Error(t, err)

	var graphErr *ResponseError
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, 190, graphErr.Code)
	assert.Equal(t, "OAuthException", graphErr.Type)
	assert.Equal(t, "graph error 190 (OAuthException): Invalid OAuth access token.", err.Error())
}

func TestDecodeCollection(t *testing.T) {
	nodes, err := DecodeCollection(strings.NewReader(`{
		"data": [{"id": "1", "name": "Ann"}, {"id": "2", "name": "Bob"}],
		"paging": {"cursors": {"before": "a", "after": "b"}}
	}`))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "1", nodes[0].ID())
	assert.Equal(t, "2", nodes[1].ID())
}

func TestDecodeCollection_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing data", `{"paging": {}}`},
		{"data is not a list", `{"data": {"id": "1"}}`},
		{"item is not an object", `{"data": ["1"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCollection(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestNode_AsArrayIsADeepCopy(t *testing.T) {
	node := NewNode(map[string]any{
		"id":       "1",
		"location": map[string]any{"city": "NY"},
	})

	fields := node.AsArray()
	fields["location"].(map[string]any)["city"] = "LA"

	city := node.AsArray()["location"].(map[string]any)["city"]
	assert.Equal(t, "NY", city)
}

func TestNode_Nil(t *testing.T) {
	var node *Node

	assert.Equal(t, map[string]any{}, node.AsArray())
	assert.Equal(t, "", node.ID())
}

func TestNode_SatisfiesCoreNode(t *testing.T) {
	var _ core.Node = NewNode(nil)
}
