package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sceneswap/internal/presentation/graph"
	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
)

// InspectOptions contains the configuration for the inspect command.
type InspectOptions struct {
	ScenePath  string
	ConfigPath string
	Overrides  map[string]any
	Mermaid    bool
	Stdout     io.Writer
}

// RunInspect prints the scene tree with each node's capability and marks the
// nodes an import would replace.
func RunInspect(opts InspectOptions, classifier ports.Classifier) error {
	cfg, err := LoadConfig(ImportOptions{ConfigPath: opts.ConfigPath, Overrides: opts.Overrides})
	if err != nil {
		return err
	}
	root, err := LoadScene(opts.ScenePath)
	if err != nil {
		return err
	}
	out := (&ImportOptions{Stdout: opts.Stdout}).stdout()
	if opts.Mermaid {
		fmt.Fprint(out, graph.GenerateMermaid(root, classifier, planOverlay(root, classifier, cfg.HintTag)))
		return nil
	}
	printTree(out, root, classifier, cfg.HintTag, 0)
	return nil
}

// planOverlay marks the tagged nodes an import would replace or skip.
func planOverlay(root *domain.Node, classifier ports.Classifier, tag string) *graph.Overlay {
	overlay := &graph.Overlay{}
	root.WalkPre(func(n *domain.Node) bool {
		if n == root || !strings.HasSuffix(n.Name, tag) {
			return true
		}
		if classifier.Classify(n) == domain.CapabilityCollisionVolume {
			overlay.Replace = append(overlay.Replace, n.Path())
		} else {
			overlay.Skip = append(overlay.Skip, n.Path())
		}
		return true
	})
	return overlay
}

func printTree(w io.Writer, n *domain.Node, classifier ports.Classifier, tag string, depth int) {
	capability := classifier.Classify(n)
	mark := ""
	if depth > 0 && strings.HasSuffix(n.Name, tag) {
		if capability == domain.CapabilityCollisionVolume {
			mark = " -> replace"
		} else {
			mark = " -> skip"
		}
	}
	fmt.Fprintf(w, "%s%s (%s) [%s]%s\n", strings.Repeat("  ", depth), n.Name, n.Kind, capability, mark)
	for _, c := range n.Children() {
		printTree(w, c, classifier, tag, depth+1)
	}
}
