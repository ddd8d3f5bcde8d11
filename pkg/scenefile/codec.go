package scenefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Codec encodes packed scenes to scene files and back.
type Codec interface {
	Name() string
	Extension() string
	Encode(ps *PackedScene) ([]byte, error)
	Decode(data []byte) (*PackedScene, error)
}

var codecs = map[string]Codec{
	"tscn": TSCN{},
	"json": JSON{},
	"yaml": YAML{},
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown scene format %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// ForPath picks a codec from the file extension of path.
func ForPath(path string) (Codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tscn":
		return TSCN{}, nil
	case ".json":
		return JSON{}, nil
	case ".yaml", ".yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("no scene codec for extension %q", ext)
	}
}

// Names returns the registered codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// JSON stores packed scenes as indented JSON.
type JSON struct{}

// Name implements Codec.
func (JSON) Name() string { return "json" }

// Extension implements Codec.
func (JSON) Extension() string { return ".json" }

// Encode implements Codec.
func (JSON) Encode(ps *PackedScene) ([]byte, error) {
	out := withFloatProps(ps, func(lit string) any { return json.Number(lit) })
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode implements Codec. Integer properties come back as int64.
func (JSON) Decode(data []byte) (*PackedScene, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var ps PackedScene
	if err := dec.Decode(&ps); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	for i := range ps.Nodes {
		for k, v := range ps.Nodes[i].Props {
			num, ok := v.(json.Number)
			if !ok {
				continue
			}
			if n, err := num.Int64(); err == nil {
				ps.Nodes[i].Props[k] = n
				continue
			}
			f, err := num.Float64()
			if err != nil {
				return nil, fmt.Errorf("json: node %q property %q: %w", ps.Nodes[i].Name, k, err)
			}
			ps.Nodes[i].Props[k] = f
		}
	}
	fillDefaults(&ps)
	return &ps, nil
}

// YAML stores packed scenes as YAML documents.
type YAML struct{}

// Name implements Codec.
func (YAML) Name() string { return "yaml" }

// Extension implements Codec.
func (YAML) Extension() string { return ".yaml" }

// Encode implements Codec.
func (YAML) Encode(ps *PackedScene) ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	out := withFloatProps(ps, func(lit string) any {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: lit}
	})
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return b.Bytes(), nil
}

// Decode implements Codec.
func (YAML) Decode(data []byte) (*PackedScene, error) {
	var ps PackedScene
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	fillDefaults(&ps)
	return &ps, nil
}

// withFloatProps returns a shallow copy of ps in which finite float props are
// replaced by wrap(literal). Both encoders would otherwise write 4.0 as 4,
// which reads back as an integer.
func withFloatProps(ps *PackedScene, wrap func(lit string) any) *PackedScene {
	if ps == nil {
		return nil
	}
	out := &PackedScene{Format: ps.Format, Nodes: make([]PackedNode, len(ps.Nodes))}
	for i, n := range ps.Nodes {
		if len(n.Props) > 0 {
			props := make(map[string]any, len(n.Props))
			for k, v := range n.Props {
				if f, ok := v.(float64); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
					v = wrap(floatLiteral(f))
				}
				props[k] = v
			}
			n.Props = props
		}
		out.Nodes[i] = n
	}
	return out
}

// fillDefaults treats an omitted format as the current one and an omitted
// (all zero) basis as the identity, so hand written dumps stay short.
func fillDefaults(ps *PackedScene) {
	if ps.Format == 0 {
		ps.Format = FormatVersion
	}
	for i := range ps.Nodes {
		if ps.Nodes[i].Transform.Basis == (mgl32.Mat3{}) {
			ps.Nodes[i].Transform.Basis = mgl32.Ident3()
		}
	}
}
