package trellis

// Field describes the expectations for one dotted key path. Paths not
// covered by any Field pass through validation untouched, so manifests
// can carry arbitrary module-specific blocks.
type Field struct {
	Path     string   // Dotted key path (e.g., "base.train.optimizer.name")
	Kind     Kind     // Expected scalar kind; KindNull accepts any kind
	Required bool     // Key must be present in the merged tree
	OneOf    []string // Allowed values for string scalars
	Min      *float64 // Inclusive lower bound for numeric scalars
	Max      *float64 // Inclusive upper bound for numeric scalars
}

// Schema is a declarative description of required keys, expected scalar
// kinds and allowed enumerations for a configuration document.
type Schema struct {
	Fields []Field
}

// Bound returns a pointer to v for use as a Field Min or Max.
func Bound(v float64) *float64 {
	return &v
}
