// Package attrs reads values back out of slog-style key/value lists.
package attrs

// ExtractString returns the string value paired with key in a
// [k1, v1, k2, v2, ...] list, or "" when the key is absent or the value
// is not a string.
func ExtractString(kv []any, key string) string {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok && k == key {
			v, _ := kv[i+1].(string)
			return v
		}
	}
	return ""
}
