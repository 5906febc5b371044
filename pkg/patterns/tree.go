package patterns

// Pattern is a leaf content fragment parsed from a single source file
type Pattern struct {
	// ID is the dot-joined path from the tree root to this pattern
	ID string

	// Name is the display name, front matter "name" or a title-cased key
	Name string

	// Path is the source file path
	Path string

	// Hidden excludes the pattern from its collection's Patterns view
	Hidden bool

	// Data holds the parsed front-matter fields, reserved keys excluded
	Data map[string]interface{}

	// Contents is the file body, untouched by the collection renderer
	Contents string
}

// Collection aggregates the patterns found directly inside one directory
type Collection struct {
	// ID is the dot-joined path from the tree root to this collection
	ID string

	// Name is the display name, overridable by collection front matter
	Name string

	// Items maps pattern key to pattern, one entry per file in the
	// directory. Never filtered.
	Items map[string]*Pattern

	// Patterns is the ordered, hidden-filtered view over Items
	Patterns []*Pattern

	// Order lists keys that sort first, from collection front matter
	Order []string

	// Data holds merged collection front matter, reserved keys excluded
	Data map[string]interface{}

	// Contents is set by the collection renderer
	Contents string

	// Rendered reports whether the renderer has run over this collection
	Rendered bool
}

// Namespace is an intermediate tree node mirroring a source directory
type Namespace struct {
	// Key is the directory name segment
	Key string

	// Collection is non-nil when the directory directly holds patterns
	Collection *Collection

	// Children maps directory name to nested namespace
	Children map[string]*Namespace
}

// Tree is the built pattern tree. Root is an anonymous container whose
// children are the top-level namespaces (usually just the root key).
type Tree struct {
	Root *Namespace
}

// NewTree returns an empty tree
func NewTree() *Tree {
	return &Tree{Root: newNamespace("")}
}

func newNamespace(key string) *Namespace {
	return &Namespace{
		Key:      key,
		Children: make(map[string]*Namespace),
	}
}

// child returns the named child namespace, creating it if needed
func (n *Namespace) child(key string) *Namespace {
	if c, ok := n.Children[key]; ok {
		return c
	}
	c := newNamespace(key)
	n.Children[key] = c
	return c
}

// sortedChildren returns child namespaces in natural key order
func (n *Namespace) sortedChildren() []*Namespace {
	keys := sortedKeys(n.Children)
	out := make([]*Namespace, 0, len(keys))
	for _, k := range keys {
		out = append(out, n.Children[k])
	}
	return out
}

// WalkCollections visits every collection depth-first in pre-order,
// namespaces in natural key order. Visiting stops at the first error.
func (t *Tree) WalkCollections(fn func(ns *Namespace, c *Collection) error) error {
	return walkCollections(t.Root, fn)
}

func walkCollections(n *Namespace, fn func(ns *Namespace, c *Collection) error) error {
	if n.Collection != nil {
		if err := fn(n, n.Collection); err != nil {
			return err
		}
	}
	for _, child := range n.sortedChildren() {
		if err := walkCollections(child, fn); err != nil {
			return err
		}
	}
	return nil
}
