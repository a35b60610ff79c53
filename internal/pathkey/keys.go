// Package pathkey normalizes configuration keys and splits dotted paths.
package pathkey

import "strings"

// Normalize converts a raw key to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted
// to dots; single underscores within a level are preserved.
// Examples:
//   - "IO__LOADER__BATCH_SIZE" → "io.loader.batch_size"
//   - "WEIGHT_PREFIX" → "weight_prefix"
func Normalize(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// Split splits a dotted key path into its segments. An empty path yields
// no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Join combines a prefix with a key to form a nested path.
// Examples:
//   - Join("io.loader", "batch_size") → "io.loader.batch_size"
//   - Join("", "model") → "model"
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
