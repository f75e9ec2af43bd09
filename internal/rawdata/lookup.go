package rawdata

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt64 converts a decoded JSON value to an integer.
// Numeric strings are accepted because the feed encodes some codes (situationCode) as text.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		// 2^63 itself is not representable as int64
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Int64 reads m[key] as an integer.
func Int64(m map[string]any, key string) (int64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	return ToInt64(v)
}

// Int reads m[key] as a platform int.
func Int(m map[string]any, key string) (int, bool) {
	n, ok := Int64(m, key)
	return int(n), ok
}

// String reads m[key] as a string. Non-string values are reported as absent.
func String(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Map reads m[key] as a nested object.
func Map(m map[string]any, key string) (map[string]any, bool) {
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

// Slice reads m[key] as an array.
func Slice(m map[string]any, key string) ([]any, bool) {
	s, ok := m[key].([]any)
	return s, ok
}

// Int64Ptr is Int64 returning nil for absent values.
func Int64Ptr(m map[string]any, key string) *int64 {
	if n, ok := Int64(m, key); ok {
		return &n
	}
	return nil
}

// IntPtr is Int returning nil for absent values.
func IntPtr(m map[string]any, key string) *int {
	if n, ok := Int(m, key); ok {
		return &n
	}
	return nil
}

// StringPtr is String returning nil for absent values.
func StringPtr(m map[string]any, key string) *string {
	if s, ok := String(m, key); ok {
		return &s
	}
	return nil
}
