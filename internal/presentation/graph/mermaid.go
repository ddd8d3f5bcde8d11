package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
)

// Overlay lists node paths to highlight on the diagram.
type Overlay struct {
	Replace []string
	Skip    []string
}

// GenerateMermaid produces a Mermaid flowchart of the scene tree.
// Node shapes follow the capability of the node kind:
// - Collision volume: [[Subroutine]]
// - Trigger volume: ([Stadium])
// - Generic: [Rectangle]
// Nodes are identified by pre-order index because names repeat.
func GenerateMermaid(root *domain.Node, classifier ports.Classifier, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Node]string)
	byPath := make(map[string][]string)
	root.WalkPre(func(n *domain.Node) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id
		byPath[n.Path()] = append(byPath[n.Path()], id)

		opener, closer := "[", "]"
		switch classifier.Classify(n) {
		case domain.CapabilityCollisionVolume:
			opener, closer = "[[", "]]"
		case domain.CapabilityTriggerVolume:
			opener, closer = "([", "])"
		}
		// Escape double quotes for Mermaid labels
		label := strings.ReplaceAll(n.Name, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> %s\"%s\n", id, opener, label, n.Kind, closer))
		if p := n.Parent(); p != nil {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[p], id))
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef replace fill:#d1fae5,stroke:#047857,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef skip fill:#fef3c7,stroke:#b45309,stroke-width:2px,color:#000;\n")
		writeClass(&sb, "replace", overlay.Replace, byPath)
		writeClass(&sb, "skip", overlay.Skip, byPath)
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, class string, paths []string, byPath map[string][]string) {
	seen := make(map[string]bool)
	for _, p := range paths {
		for _, id := range byPath[p] {
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
			}
		}
	}
}
