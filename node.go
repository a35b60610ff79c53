package trellis

import (
	"github.com/voxelml/trellis/internal/pathkey"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind (e.g., "int", "mapping").
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one node of a parsed configuration tree: a scalar (null, bool,
// int, float, string), a sequence, or a mapping. Mappings keep key
// insertion order for serialization; lookup is order-independent.
// A tree is built once per load and must not be modified after it has
// been handed out.
type Node struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	items    []*Node
	keys     []string
	children map[string]*Node
}

// Null returns an explicit null node. Distinct from an absent key.
func Null() *Node {
	return &Node{kind: KindNull}
}

// Bool returns a boolean scalar node.
func Bool(v bool) *Node {
	return &Node{kind: KindBool, boolVal: v}
}

// Int returns an integer scalar node.
func Int(v int64) *Node {
	return &Node{kind: KindInt, intVal: v}
}

// Float returns a floating-point scalar node.
func Float(v float64) *Node {
	return &Node{kind: KindFloat, floatVal: v}
}

// String returns a string scalar node.
func String(v string) *Node {
	return &Node{kind: KindString, strVal: v}
}

// Sequence returns a sequence node holding the given items.
func Sequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// NewMapping returns an empty mapping node. Populate it with Put before
// sharing the tree.
func NewMapping() *Node {
	return &Node{
		kind:     KindMapping,
		children: make(map[string]*Node),
	}
}

// Put sets a key on a mapping node, keeping insertion order for new keys
// and replacing the value in place for existing ones. Returns the node
// for chaining. Panics if called on a non-mapping node.
func (n *Node) Put(key string, child *Node) *Node {
	if n.kind != KindMapping {
		panic("trellis: Put on non-mapping node")
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
	return n
}

// Kind returns the variant held by the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsNull reports whether the node is an explicit null.
func (n *Node) IsNull() bool {
	return n.kind == KindNull
}

// AsBool returns the boolean value and whether the node is a bool.
func (n *Node) AsBool() (bool, bool) {
	if n.kind != KindBool {
		return false, false
	}
	return n.boolVal, true
}

// AsInt returns the integer value and whether the node is an int.
// Float nodes are never narrowed to int.
func (n *Node) AsInt() (int64, bool) {
	if n.kind != KindInt {
		return 0, false
	}
	return n.intVal, true
}

// AsFloat returns the floating-point value and whether the node is
// numeric. Integer nodes widen to float (a literal 1 is a valid
// learning rate), the reverse never happens.
func (n *Node) AsFloat() (float64, bool) {
	switch n.kind {
	case KindFloat:
		return n.floatVal, true
	case KindInt:
		return float64(n.intVal), true
	default:
		return 0, false
	}
}

// AsString returns the string value and whether the node is a string.
func (n *Node) AsString() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.strVal, true
}

// Items returns the elements of a sequence node, nil otherwise.
// The returned slice is the node's own storage; callers must not modify it.
func (n *Node) Items() []*Node {
	if n.kind != KindSequence {
		return nil
	}
	return n.items
}

// Keys returns a mapping's keys in insertion order, nil otherwise.
// The returned slice is the node's own storage; callers must not modify it.
func (n *Node) Keys() []string {
	if n.kind != KindMapping {
		return nil
	}
	return n.keys
}

// Len returns the number of elements (sequence) or keys (mapping), zero
// for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.keys)
	default:
		return 0
	}
}

// Child returns the value under key and whether it exists. Only mappings
// have children.
func (n *Node) Child(key string) (*Node, bool) {
	if n.kind != KindMapping {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Lookup resolves a dotted key path (e.g., "model.modules.uresnet.filters")
// and reports whether every segment exists.
func (n *Node) Lookup(path string) (*Node, bool) {
	current := n
	for _, segment := range pathkey.Split(path) {
		child, ok := current.Child(segment)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Equal reports structural equivalence: same kinds, same scalar values,
// same nesting. Mapping key order is ignored, sequence order is not.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}

	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return n.boolVal == other.boolVal
	case KindInt:
		return n.intVal == other.intVal
	case KindFloat:
		return n.floatVal == other.floatVal
	case KindString:
		return n.strVal == other.strVal
	case KindSequence:
		if len(n.items) != len(other.items) {
			return false
		}
		for i, item := range n.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for key, child := range n.children {
			otherChild, ok := other.children[key]
			if !ok || !child.Equal(otherChild) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		kind:     n.kind,
		boolVal:  n.boolVal,
		intVal:   n.intVal,
		floatVal: n.floatVal,
		strVal:   n.strVal,
	}

	switch n.kind {
	case KindSequence:
		out.items = make([]*Node, len(n.items))
		for i, item := range n.items {
			out.items[i] = item.Clone()
		}
	case KindMapping:
		out.keys = append([]string(nil), n.keys...)
		out.children = make(map[string]*Node, len(n.children))
		for key, child := range n.children {
			out.children[key] = child.Clone()
		}
	}

	return out
}
