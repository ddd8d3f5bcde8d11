package domain

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/jinzhu/copier"
)

// Node represents a vertex of the imported scene graph.
// The child list is ordered and owned exclusively by the node; it is only
// mutated through the methods below so that parent links stay consistent.
type Node struct {
	Name      string         `json:"name" yaml:"name"`
	Kind      Kind           `json:"kind" yaml:"kind"`
	Transform Transform      `json:"transform" yaml:"transform"`
	Props     map[string]any `json:"props,omitempty" yaml:"props,omitempty"`

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:      name,
		Kind:      kind,
		Transform: IdentityTransform(),
	}
}

// Parent returns the owning node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// HasChildren reports whether the node has any children.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// Child returns the child at index i, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a snapshot of the child list. Mutating the tree afterwards
// does not change the returned slice.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddChild appends c to the child list. If c already has a parent it is
// detached from it first. It returns c for chaining.
func (n *Node) AddChild(c *Node) *Node {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// IndexInParent returns the index of the node in its parent's child list,
// or -1 if it has no parent.
func (n *Node) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// ReplaceChildAt puts repl in the slot at index i and releases the node that
// occupied it: the old node loses its parent link in the same step. repl must
// be detached. The released node is returned.
func (n *Node) ReplaceChildAt(i int, repl *Node) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: %d (have %d children)", ErrIndexOutOfRange, i, len(n.children))
	}
	if repl == nil {
		return nil, fmt.Errorf("replacement for child %d is nil", i)
	}
	if repl.parent != nil {
		return nil, fmt.Errorf("replacement %q is already attached to %q", repl.Name, repl.parent.Name)
	}
	old := n.children[i]
	n.children[i] = repl
	repl.parent = n
	old.parent = nil
	return old, nil
}

// MoveChildrenTo re-parents every child of n onto dst, preserving order.
// Children are appended after any children dst already has.
func (n *Node) MoveChildrenTo(dst *Node) {
	if dst == n {
		return
	}
	for _, c := range n.children {
		c.parent = dst
		dst.children = append(dst.children, c)
	}
	n.children = nil
}

func (n *Node) removeChild(c *Node) {
	for i, k := range n.children {
		if k == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Path returns the slash separated path of the node relative to its root.
// The root itself is ".".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	if len(parts) == 0 {
		return "."
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// WalkPre calls fun on the node and then on every descendant in depth-first
// pre-order. Returning false from fun skips the children of that node.
func (n *Node) WalkPre(fun func(k *Node) bool) {
	if !fun(n) {
		return
	}
	for _, c := range n.Children() {
		c.WalkPre(fun)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.WalkPre(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Clone returns a deep copy of the subtree rooted at n. The copy is detached.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:      n.Name,
		Kind:      n.Kind,
		Transform: n.Transform,
	}
	if n.Props != nil {
		c.Props = make(map[string]any, len(n.Props))
		if err := copier.CopyWithOption(&c.Props, n.Props, copier.Option{DeepCopy: true}); err != nil {
			c.Props = maps.Clone(n.Props)
		}
	}
	for _, k := range n.children {
		c.AddChild(k.Clone())
	}
	return c
}

// Equal reports whether both subtrees have the same shape, names, kinds,
// transforms and props. Parent links of the two roots are not compared.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.Kind != o.Kind || !n.Transform.Equal(o.Transform) {
		return false
	}
	if len(n.Props) != len(o.Props) || (len(n.Props) > 0 && !reflect.DeepEqual(n.Props, o.Props)) {
		return false
	}
	if len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String returns a compact single line description used in logs.
func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.Path(), n.Kind)
}
