// Package scenefile converts live scene graphs to packed scenes and packed
// scenes to and from scene files.
package scenefile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// FormatVersion is written into every scene file header.
const FormatVersion = 3

// reservedNameChars cannot appear in node names because they are used by
// node paths.
const reservedNameChars = `./:@%"`

// PackedScene is the flat, serializable form of a node tree.
// Nodes are stored in depth-first pre-order; the root comes first.
type PackedScene struct {
	Format int          `json:"format" yaml:"format"`
	Nodes  []PackedNode `json:"nodes" yaml:"nodes"`
}

// PackedNode is one node of a PackedScene. Parent is the path of the parent
// relative to the root ("." for children of the root) and empty for the root.
type PackedNode struct {
	Name      string           `json:"name" yaml:"name"`
	Kind      domain.Kind      `json:"kind" yaml:"kind"`
	Parent    string           `json:"parent,omitempty" yaml:"parent,omitempty"`
	Transform domain.Transform `json:"transform" yaml:"transform"`
	Props     map[string]any   `json:"props,omitempty" yaml:"props,omitempty"`
}

// Root returns the root record, or nil for an empty scene.
func (p *PackedScene) Root() *PackedNode {
	if p == nil || len(p.Nodes) == 0 {
		return nil
	}
	return &p.Nodes[0]
}

// Pack flattens the tree under root. The live tree is not modified.
// Sibling names are made unique in the packed scene: a repeated name gets the
// lowest numeric suffix, starting at 2, that no sibling uses.
// Errors are *domain.StepError values of kind domain.ErrPackFailed.
func Pack(root *domain.Node) (*PackedScene, error) {
	if root == nil {
		return nil, packError(domain.CodeInvalidParameter, "", domain.ErrNilRoot)
	}
	ps := &PackedScene{Format: FormatVersion}
	if err := packNode(ps, root, root.Name, "", "."); err != nil {
		return nil, err
	}
	return ps, nil
}

func packNode(ps *PackedScene, n *domain.Node, name, parentPath, path string) error {
	if err := ValidateName(n.Name); err != nil {
		return packError(domain.CodeInvalidData, path, err)
	}
	if n.Kind == "" {
		return packError(domain.CodeInvalidData, path, fmt.Errorf("node %q has no kind", n.Name))
	}
	props, err := packProps(n.Props)
	if err != nil {
		return packError(domain.CodeInvalidData, path, fmt.Errorf("node %q: %w", n.Name, err))
	}
	ps.Nodes = append(ps.Nodes, PackedNode{
		Name:      name,
		Kind:      n.Kind,
		Parent:    parentPath,
		Transform: n.Transform,
		Props:     props,
	})

	names := uniqueNames(n.Children())
	for i, c := range n.Children() {
		if err := packNode(ps, c, names[i], path, joinPath(path, names[i])); err != nil {
			return err
		}
	}
	return nil
}

// uniqueNames returns the packed name of each child. The first occurrence of
// a name keeps it; later ones get "<name>2", "<name>3" and so on, skipping
// names any sibling already has.
func uniqueNames(children []*domain.Node) []string {
	taken := make(map[string]bool, len(children))
	for _, c := range children {
		taken[c.Name] = true
	}
	used := make(map[string]bool, len(children))
	out := make([]string, len(children))
	for i, c := range children {
		name := c.Name
		if used[name] {
			for k := 2; ; k++ {
				candidate := c.Name + strconv.Itoa(k)
				if !taken[candidate] && !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func joinPath(parent, name string) string {
	if parent == "." {
		return name
	}
	return parent + "/" + name
}

// ValidateName reports whether name can be stored in a scene file.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("node name is empty")
	}
	if i := strings.IndexAny(name, reservedNameChars); i >= 0 {
		return fmt.Errorf("node name %q contains reserved character %q", name, name[i])
	}
	if strings.ContainsAny(name, "\n\r") {
		return fmt.Errorf("node name %q contains a line break", name)
	}
	return nil
}

// packProps copies props, normalizing the supported value types: bool,
// string, integers (stored as int64) and floats (stored as float64).
func packProps(props map[string]any) (map[string]any, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if !isPropKey(k) {
			return nil, fmt.Errorf("invalid property name %q", k)
		}
		nv, err := normalizeProp(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeProp(v any) (any, error) {
	switch x := v.(type) {
	case bool, string, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case float32:
		return float64(x), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// isPropKey accepts identifiers made of letters, digits, '_' and '/'.
func isPropKey(k string) bool {
	if k == "" || k == "transform" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '/':
		default:
			return false
		}
	}
	return true
}

func packError(code domain.Code, path string, err error) error {
	return &domain.StepError{
		Kind: domain.ErrPackFailed,
		Step: domain.StepPack,
		Code: code,
		Path: path,
		Err:  err,
	}
}

// Unpack rebuilds a live tree from a packed scene.
func Unpack(ps *PackedScene) (*domain.Node, error) {
	if ps == nil || len(ps.Nodes) == 0 {
		return nil, fmt.Errorf("packed scene has no nodes")
	}
	if ps.Nodes[0].Parent != "" {
		return nil, fmt.Errorf("first node %q must be the root", ps.Nodes[0].Name)
	}
	byPath := make(map[string]*domain.Node, len(ps.Nodes))
	var root *domain.Node
	for i, pn := range ps.Nodes {
		n := &domain.Node{
			Name:      pn.Name,
			Kind:      pn.Kind,
			Transform: pn.Transform,
		}
		if len(pn.Props) > 0 {
			n.Props = make(map[string]any, len(pn.Props))
			for k, v := range pn.Props {
				nv, err := normalizeProp(v)
				if err != nil {
					return nil, fmt.Errorf("node %q property %q: %w", pn.Name, k, err)
				}
				n.Props[k] = nv
			}
		}
		if i == 0 {
			root = n
			byPath["."] = n
			continue
		}
		if pn.Parent == "" {
			return nil, fmt.Errorf("node %q has no parent", pn.Name)
		}
		parent, ok := byPath[pn.Parent]
		if !ok {
			return nil, fmt.Errorf("node %q: parent %q not found", pn.Name, pn.Parent)
		}
		parent.AddChild(n)
		path := n.Path()
		if _, dup := byPath[path]; dup {
			return nil, fmt.Errorf("duplicate node path %q", path)
		}
		byPath[path] = n
	}
	return root, nil
}
