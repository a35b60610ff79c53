package trellis

// Config is the resolved configuration: the merged, validated tree handed
// to consumers. It is immutable; pass it (or a subtree) explicitly into
// each consuming component rather than exposing it as ambient state.
type Config struct {
	root    *Node
	origins map[string]string
}

// Root returns the root node of the resolved tree.
func (c *Config) Root() *Node {
	return c.root
}

// Lookup resolves a dotted key path and reports whether it exists.
func (c *Config) Lookup(path string) (*Node, bool) {
	return c.root.Lookup(path)
}

// IsNull reports whether the path exists and holds an explicit null.
// An absent key is not null.
func (c *Config) IsNull(path string) bool {
	node, ok := c.root.Lookup(path)
	return ok && node.IsNull()
}

// String returns the string at path and whether it exists with that kind.
func (c *Config) String(path string) (string, bool) {
	node, ok := c.root.Lookup(path)
	if !ok {
		return "", false
	}
	return node.AsString()
}

// Int returns the integer at path and whether it exists with that kind.
func (c *Config) Int(path string) (int64, bool) {
	node, ok := c.root.Lookup(path)
	if !ok {
		return 0, false
	}
	return node.AsInt()
}

// Float returns the number at path and whether it exists. Integer values
// widen to float.
func (c *Config) Float(path string) (float64, bool) {
	node, ok := c.root.Lookup(path)
	if !ok {
		return 0, false
	}
	return node.AsFloat()
}

// Bool returns the boolean at path and whether it exists with that kind.
func (c *Config) Bool(path string) (bool, bool) {
	node, ok := c.root.Lookup(path)
	if !ok {
		return false, false
	}
	return node.AsBool()
}

// Strings returns the sequence of strings at path. The second return is
// false if the path is absent, not a sequence, or holds a non-string item.
func (c *Config) Strings(path string) ([]string, bool) {
	node, ok := c.root.Lookup(path)
	if !ok || node.Kind() != KindSequence {
		return nil, false
	}
	out := make([]string, 0, node.Len())
	for _, item := range node.Items() {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// StringOr returns the string at path or the provided default.
func (c *Config) StringOr(path, defaultVal string) string {
	if v, ok := c.String(path); ok {
		return v
	}
	return defaultVal
}

// IntOr returns the integer at path or the provided default.
func (c *Config) IntOr(path string, defaultVal int64) int64 {
	if v, ok := c.Int(path); ok {
		return v
	}
	return defaultVal
}

// FloatOr returns the number at path or the provided default.
func (c *Config) FloatOr(path string, defaultVal float64) float64 {
	if v, ok := c.Float(path); ok {
		return v
	}
	return defaultVal
}

// BoolOr returns the boolean at path or the provided default.
func (c *Config) BoolOr(path string, defaultVal bool) bool {
	if v, ok := c.Bool(path); ok {
		return v
	}
	return defaultVal
}

// Origin returns the name of the source that supplied the value at a leaf
// path (e.g., "file:uresnet.yaml", "env", "default") and whether the path
// has a recorded origin.
func (c *Config) Origin(path string) (string, bool) {
	name, ok := c.origins[path]
	return name, ok
}
