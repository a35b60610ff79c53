package sourceenv

import (
	"context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/voxelml/trellis"
	"github.com/voxelml/trellis/internal/pathkey"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (SPINE_ matches
	// spine_, Spine_, etc.). When true, prefix must match exactly.
	// Keys are always normalized to lowercase after prefix stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) trellis.Source {
	return &envSource{opts: opts}
}

// Load scans environment variables, filters by prefix, and builds a
// nested override tree. Values get YAML scalar typing so "4" becomes an
// int, "true" a bool and "null" an explicit null.
func (e *envSource) Load(ctx context.Context) (*trellis.Node, error) {
	root := trellis.NewMapping()

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := parts[1]

		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		if key == "" {
			continue
		}

		// Normalize: IO__LOADER__BATCH_SIZE → io.loader.batch_size
		path := pathkey.Normalize(key)
		insert(root, pathkey.Split(path), scalarNode(value))
	}

	return root, nil
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix != "" {
		return "env:" + e.opts.Prefix
	}
	return "env"
}

// insert places a leaf at the given path, creating intermediate mappings.
// A scalar collision on an intermediate segment is overwritten; env
// overlays are flat and last-one-wins.
func insert(root *trellis.Node, segments []string, leaf *trellis.Node) {
	current := root
	for i, segment := range segments {
		if i == len(segments)-1 {
			current.Put(segment, leaf)
			return
		}
		child, ok := current.Child(segment)
		if !ok || child.Kind() != trellis.KindMapping {
			child = trellis.NewMapping()
			current.Put(segment, child)
		}
		current = child
	}
}

// scalarNode types a raw env value using YAML scalar resolution. Values
// that resolve to a collection (e.g., "[1,2]") stay raw strings; env
// overrides are scalar-only.
func scalarNode(value string) *trellis.Node {
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return trellis.String(value)
	}
	switch t := v.(type) {
	case nil:
		return trellis.Null()
	case bool:
		return trellis.Bool(t)
	case int:
		return trellis.Int(int64(t))
	case int64:
		return trellis.Int(t)
	case float64:
		return trellis.Float(t)
	case string:
		return trellis.String(t)
	default:
		return trellis.String(value)
	}
}
