package scenefile

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// TSCN is the text scene codec:
//
//	[gd_scene format=3]
//
//	[node name="Root" type="Node3D"]
//
//	[node name="Cube_CM" type="Area3D" parent="."]
//	transform = Transform3D(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 2, 0)
//	mass = 2.5
//
// Identity transforms are omitted. Properties are written sorted by name.
type TSCN struct{}

// Name implements Codec.
func (TSCN) Name() string { return "tscn" }

// Extension implements Codec.
func (TSCN) Extension() string { return ".tscn" }

// Encode implements Codec.
func (TSCN) Encode(ps *PackedScene) ([]byte, error) {
	if ps == nil || len(ps.Nodes) == 0 {
		return nil, fmt.Errorf("tscn: packed scene has no nodes")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "[gd_scene format=%d]\n", FormatVersion)
	for i, n := range ps.Nodes {
		b.WriteString("\n[node name=")
		b.WriteString(strconv.Quote(n.Name))
		b.WriteString(" type=")
		b.WriteString(strconv.Quote(string(n.Kind)))
		if i > 0 {
			b.WriteString(" parent=")
			b.WriteString(strconv.Quote(n.Parent))
		}
		b.WriteString("]\n")
		if !n.Transform.IsIdentity() {
			b.WriteString("transform = ")
			b.WriteString(formatTransform(n.Transform))
			b.WriteByte('\n')
		}
		keys := make([]string, 0, len(n.Props))
		for k := range n.Props {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			v, err := formatValue(n.Props[k])
			if err != nil {
				return nil, fmt.Errorf("tscn: node %q property %q: %w", n.Name, k, err)
			}
			fmt.Fprintf(&b, "%s = %s\n", k, v)
		}
	}
	return b.Bytes(), nil
}

func formatTransform(t domain.Transform) string {
	v := t.Values()
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return "Transform3D(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return strconv.Quote(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return floatLiteral(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// floatLiteral formats x so that it always reads back as a float.
func floatLiteral(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !math.IsInf(x, 0) && !math.IsNaN(x) && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// maxLineSize bounds a single line of a scene file. String properties are
// written on one line, so the scanner default of 64 KiB is too small.
const maxLineSize = 256 << 20

// Decode implements Codec.
func (TSCN) Decode(data []byte) (*PackedScene, error) {
	ps := &PackedScene{}
	var cur *PackedNode
	header := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		if strings.HasPrefix(text, "[") {
			section, attrs, err := parseSection(text)
			if err != nil {
				return nil, fmt.Errorf("tscn: line %d: %w", line, err)
			}
			switch section {
			case "gd_scene":
				if header {
					return nil, fmt.Errorf("tscn: line %d: duplicate gd_scene header", line)
				}
				header = true
				format, err := strconv.Atoi(attrs["format"])
				if err != nil {
					return nil, fmt.Errorf("tscn: line %d: invalid format %q", line, attrs["format"])
				}
				if format != FormatVersion {
					return nil, fmt.Errorf("tscn: line %d: unsupported format %d", line, format)
				}
				ps.Format = format
			case "node":
				if !header {
					return nil, fmt.Errorf("tscn: line %d: node before gd_scene header", line)
				}
				n, err := nodeFromAttrs(attrs, len(ps.Nodes) == 0)
				if err != nil {
					return nil, fmt.Errorf("tscn: line %d: %w", line, err)
				}
				ps.Nodes = append(ps.Nodes, n)
				cur = &ps.Nodes[len(ps.Nodes)-1]
			default:
				return nil, fmt.Errorf("tscn: line %d: unsupported section %q", line, section)
			}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("tscn: line %d: property outside of a node", line)
		}
		key, raw, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("tscn: line %d: expected key = value", line)
		}
		key, raw = strings.TrimSpace(key), strings.TrimSpace(raw)
		if key == "transform" {
			t, err := parseTransform(raw)
			if err != nil {
				return nil, fmt.Errorf("tscn: line %d: %w", line, err)
			}
			cur.Transform = t
			continue
		}
		if !isPropKey(key) {
			return nil, fmt.Errorf("tscn: line %d: invalid property name %q", line, key)
		}
		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("tscn: line %d: property %q: %w", line, key, err)
		}
		if cur.Props == nil {
			cur.Props = make(map[string]any)
		}
		cur.Props[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tscn: %w", err)
	}
	if !header {
		return nil, fmt.Errorf("tscn: missing gd_scene header")
	}
	if len(ps.Nodes) == 0 {
		return nil, fmt.Errorf("tscn: scene has no nodes")
	}
	return ps, nil
}

func nodeFromAttrs(attrs map[string]string, root bool) (PackedNode, error) {
	name, ok := attrs["name"]
	if !ok {
		return PackedNode{}, fmt.Errorf("node without name")
	}
	kind, ok := attrs["type"]
	if !ok {
		return PackedNode{}, fmt.Errorf("node %q without type", name)
	}
	parent, hasParent := attrs["parent"]
	if root && hasParent {
		return PackedNode{}, fmt.Errorf("root node %q must not have a parent", name)
	}
	if !root && !hasParent {
		return PackedNode{}, fmt.Errorf("node %q without parent", name)
	}
	return PackedNode{
		Name:      name,
		Kind:      domain.Kind(kind),
		Parent:    parent,
		Transform: domain.IdentityTransform(),
	}, nil
}

// parseSection splits `[name key="value" key=value]` into its parts.
func parseSection(text string) (string, map[string]string, error) {
	if !strings.HasSuffix(text, "]") {
		return "", nil, fmt.Errorf("unterminated section %q", text)
	}
	body := strings.TrimSpace(text[1 : len(text)-1])
	name, rest, _ := strings.Cut(body, " ")
	if name == "" {
		return "", nil, fmt.Errorf("empty section name")
	}
	attrs := make(map[string]string)
	rest = strings.TrimSpace(rest)
	for rest != "" {
		key, after, ok := strings.Cut(rest, "=")
		if !ok {
			return "", nil, fmt.Errorf("attribute without value in %q", text)
		}
		key = strings.TrimSpace(key)
		after = strings.TrimLeft(after, " ")
		var value string
		if strings.HasPrefix(after, `"`) {
			quoted, err := strconv.QuotedPrefix(after)
			if err != nil {
				return "", nil, fmt.Errorf("attribute %q: %w", key, err)
			}
			value, _ = strconv.Unquote(quoted)
			after = after[len(quoted):]
		} else {
			end := strings.IndexByte(after, ' ')
			if end < 0 {
				end = len(after)
			}
			value, after = after[:end], after[end:]
		}
		if _, dup := attrs[key]; dup {
			return "", nil, fmt.Errorf("duplicate attribute %q", key)
		}
		attrs[key] = value
		rest = strings.TrimSpace(after)
	}
	return name, attrs, nil
}

func parseTransform(raw string) (domain.Transform, error) {
	inner, ok := strings.CutPrefix(raw, "Transform3D(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return domain.Transform{}, fmt.Errorf("invalid transform %q", raw)
	}
	fields := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(fields) != 12 {
		return domain.Transform{}, fmt.Errorf("transform needs 12 components, got %d", len(fields))
	}
	var v [12]float32
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return domain.Transform{}, fmt.Errorf("transform component %d: %w", i, err)
		}
		v[i] = float32(x)
	}
	return domain.TransformFromValues(v), nil
}

func parseValue(raw string) (any, error) {
	switch {
	case raw == "true":
		return true, nil
	case raw == "false":
		return false, nil
	case strings.HasPrefix(raw, `"`):
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid string %s: %w", raw, err)
		}
		return s, nil
	case strings.ContainsAny(raw, ".eE") || strings.Contains(raw, "Inf") || raw == "NaN":
		return strconv.ParseFloat(raw, 64)
	default:
		return strconv.ParseInt(raw, 10, 64)
	}
}
