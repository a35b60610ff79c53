package trellis

import (
	"context"
	"fmt"

	"github.com/voxelml/trellis/internal/pathkey"
)

// Source provides a configuration tree from a backend (file, environment
// variables, remote store). A missing optional source should return an
// empty mapping, not an error.
type Source interface {
	// Load reads and parses the source into a node tree.
	Load(ctx context.Context) (*Node, error)

	// Name returns a human-readable identifier (e.g., "file:uresnet.yaml").
	Name() string
}

// Loader loads, merges and validates configuration. Sources are processed
// in order (later override earlier); defaults sit below all sources. A
// load either completes or fails synchronously; there is no retry and no
// watching, since a static manifest cannot become valid by retrying.
type Loader struct {
	sources  []Source
	defaults *Node
	schema   *Schema
}

// NewLoader creates a Loader with no sources, defaults or schema.
func NewLoader() *Loader {
	return &Loader{
		sources: make([]Source, 0),
	}
}

// WithSource adds a source. Sources are processed in order (later override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithDefaults sets the defaults tree every source merges onto.
func (l *Loader) WithDefaults(defaults *Node) *Loader {
	l.defaults = defaults
	return l
}

// WithSchema sets the schema the merged tree is validated against.
func (l *Loader) WithSchema(schema *Schema) *Loader {
	l.schema = schema
	return l
}

// Load reads all sources, merges them onto the defaults, validates the
// result and returns the resolved configuration. Returns a *ParseError
// for malformed documents, a wrapped I/O error for unreadable sources,
// and a *ValidationError listing every schema violation.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	merged := l.defaults
	origins := make(map[string]string)
	if l.defaults != nil {
		recordOrigins(l.defaults, "", "default", origins)
	}

	for _, source := range l.sources {
		node, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", source.Name(), err)
		}
		if node == nil {
			continue
		}
		recordOrigins(node, "", source.Name(), origins)
		merged = Merge(node, merged)
	}

	if merged == nil {
		merged = NewMapping()
	}

	if err := Validate(merged, l.schema); err != nil {
		return nil, err
	}

	return &Config{root: merged, origins: origins}, nil
}

// recordOrigins walks the leaf paths of a tree and attributes each to the
// named source. Later sources overwrite earlier attributions, mirroring
// the merge order.
func recordOrigins(node *Node, prefix, sourceName string, origins map[string]string) {
	if node.Kind() != KindMapping {
		if prefix != "" {
			origins[prefix] = sourceName
		}
		return
	}
	for _, key := range node.Keys() {
		child, _ := node.Child(key)
		recordOrigins(child, pathkey.Join(prefix, key), sourceName, origins)
	}
}
