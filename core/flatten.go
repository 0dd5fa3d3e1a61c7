package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// FlattenGraphNode flattens a graph node into a single-level map keyed by the
// query-string path of every scalar, e.g. {"location": {"city": "NY"}}
// becomes {"location[city]": "NY"} and list items become "tags[0]", "tags[1]".
func FlattenGraphNode(data map[string]any) map[string]string {
	return ParseGraphQuery(BuildGraphQuery(data))
}

// BuildGraphQuery encodes data as a query string with bracketed key paths.
// Nil values and empty maps or lists produce no pair; map keys are emitted
// in sorted order.
func BuildGraphQuery(data map[string]any) string {
	pairs := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		pairs = appendQueryPairs(pairs, key, data[key])
	}
	return strings.Join(pairs, "&")
}

// ParseGraphQuery splits a query string built by BuildGraphQuery into its
// decoded key/value pairs. A later duplicate key overwrites an earlier one.
func ParseGraphQuery(query string) map[string]string {
	result := make(map[string]string)
	if query == "" {
		return result
	}
	for _, param := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(param, "=")
		result[queryUnescape(key)] = queryUnescape(value)
	}
	return result
}

func appendQueryPairs(pairs []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return pairs
	case map[string]any:
		for _, child := range sortedKeys(v) {
			pairs = appendQueryPairs(pairs, key+"["+child+"]", v[child])
		}
		return pairs
	case Fields:
		return appendQueryPairs(pairs, key, map[string]any(v))
	case map[string]string:
		children := make(map[string]any, len(v))
		for child, s := range v {
			children[child] = s
		}
		return appendQueryPairs(pairs, key, children)
	case []any:
		for i, item := range v {
			pairs = appendQueryPairs(pairs, key+"["+strconv.Itoa(i)+"]", item)
		}
		return pairs
	case []string:
		for i, item := range v {
			pairs = appendQueryPairs(pairs, key+"["+strconv.Itoa(i)+"]", item)
		}
		return pairs
	case Node:
		return appendQueryPairs(pairs, key, v.AsArray())
	}

	if s, ok := scalarString(value); ok {
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(s))
	}

	// Structs, typed slices and other composites are walked through their JSON shape.
	shape, err := jsonShape(value)
	if err != nil {
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(fmt.Sprint(value)))
	}
	return appendQueryPairs(pairs, key, shape)
}

// scalarString renders a scalar the way a query-string encoder does
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return v.String(), true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

func jsonShape(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.UseNumber()
	var shape any
	if err := decoder.Decode(&shape); err != nil {
		return nil, err
	}
	return shape, nil
}

func queryUnescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
