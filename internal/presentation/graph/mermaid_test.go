package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/sceneswap/internal/presentation/graph"
	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/registry"
)

func scene() *domain.Node {
	root := domain.NewNode("Level", domain.KindNode3D)
	cube := root.AddChild(domain.NewNode("Cube", domain.KindMeshInstance3D))
	cube.AddChild(domain.NewNode("Cube_CM", domain.KindStaticBody3D))
	root.AddChild(domain.NewNode("Zone", domain.KindArea3D))
	root.AddChild(domain.NewNode(`Say "hi"`, domain.KindNode3D))
	return root
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(scene(), registry.Default(), nil)

	for _, want := range []string{
		"graph TD\n",
		`n0["Level <br/> Node3D"]`,
		`n1["Cube <br/> MeshInstance3D"]`,
		`n2[["Cube_CM <br/> StaticBody3D"]]`,
		`n3(["Zone <br/> Area3D"])`,
		`n4["Say 'hi' <br/> Node3D"]`,
		"n0 --> n1",
		"n1 --> n2",
		"n0 --> n3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "classDef") {
		t.Errorf("no overlay expected, got:\n%s", out)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	root := scene()
	root.AddChild(domain.NewNode("Cube", domain.KindNode3D))

	out := graph.GenerateMermaid(root, registry.Default(), &graph.Overlay{
		Replace: []string{"Cube/Cube_CM", "Cube/Cube_CM"},
		Skip:    []string{"Cube"},
	})

	for _, want := range []string{
		"classDef replace",
		"class n2 replace;",
		"class n1 skip;",
		"class n5 skip;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
	if strings.Count(out, "class n2 replace;") != 1 {
		t.Errorf("duplicate class lines:\n%s", out)
	}
}
