package trellis

// Merge deep-merges a user tree onto a defaults tree and returns the
// result. For a key present in both: two mappings recurse, anything else
// takes the user's value. Sequences replace the default wholesale, they
// never concatenate. An explicit null in the user tree overrides the
// default; null means "deliberately unset", not "fill me in".
//
// Merge is pure: neither input is modified, and subtrees taken verbatim
// from either side are shared, which is safe because trees are immutable
// once handed out. Merging the same defaults twice is a no-op:
// Merge(Merge(x, d), d) == Merge(x, d).
func Merge(user, defaults *Node) *Node {
	if user == nil {
		return defaults
	}
	if defaults == nil {
		return user
	}
	if user.kind != KindMapping || defaults.kind != KindMapping {
		return user
	}

	// User keys first, in their original order, then defaults-only keys.
	out := NewMapping()
	for _, key := range user.keys {
		userChild := user.children[key]
		if defaultChild, ok := defaults.children[key]; ok {
			out.Put(key, Merge(userChild, defaultChild))
		} else {
			out.Put(key, userChild)
		}
	}
	for _, key := range defaults.keys {
		if _, ok := user.children[key]; !ok {
			out.Put(key, defaults.children[key])
		}
	}

	return out
}
