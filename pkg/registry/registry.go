package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// Base kinds that decide a node's capability.
const (
	KindPhysicsBody3D domain.Kind = "PhysicsBody3D"
	KindArea3D        domain.Kind = domain.KindArea3D
)

// Registry manages the known node kinds and their inheritance.
// It implements ports.Classifier.
type Registry struct {
	mu      sync.RWMutex
	parents map[domain.Kind]domain.Kind
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parents: make(map[domain.Kind]domain.Kind),
	}
}

// Default returns a registry preloaded with the common 3D node kinds.
func Default() *Registry {
	r := NewRegistry()
	for _, k := range [][2]domain.Kind{
		{domain.KindNode, ""},
		{domain.KindNode3D, domain.KindNode},
		{"VisualInstance3D", domain.KindNode3D},
		{"GeometryInstance3D", "VisualInstance3D"},
		{domain.KindMeshInstance3D, "GeometryInstance3D"},
		{"CollisionObject3D", domain.KindNode3D},
		{KindPhysicsBody3D, "CollisionObject3D"},
		{domain.KindStaticBody3D, KindPhysicsBody3D},
		{"AnimatableBody3D", domain.KindStaticBody3D},
		{"RigidBody3D", KindPhysicsBody3D},
		{"CharacterBody3D", KindPhysicsBody3D},
		{KindArea3D, "CollisionObject3D"},
		{domain.KindCollisionShape, domain.KindNode3D},
		{"Camera3D", domain.KindNode3D},
		{"Light3D", "VisualInstance3D"},
		{"Marker3D", domain.KindNode3D},
	} {
		// the table is ordered parent-first, so Register cannot fail
		_ = r.Register(k[0], k[1])
	}
	return r
}

// Register adds a kind under parent. An empty parent registers a root kind.
// The parent must already be known. Registering an existing kind moves it.
func (r *Registry) Register(kind, parent domain.Kind) error {
	if kind == "" {
		return fmt.Errorf("kind name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if parent != "" {
		if _, ok := r.parents[parent]; !ok {
			return fmt.Errorf("parent kind not found: %s", parent)
		}
		for p := parent; p != ""; p = r.parents[p] {
			if p == kind {
				return fmt.Errorf("registering %s under %s creates a cycle", kind, parent)
			}
		}
	}
	r.parents[kind] = parent
	return nil
}

// Known reports whether kind was registered.
func (r *Registry) Known(kind domain.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parents[kind]
	return ok
}

// Inherits reports whether kind is ancestor or derives from it.
// Unknown kinds only inherit from themselves.
func (r *Registry) Inherits(kind, ancestor domain.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := kind; k != ""; k = r.parents[k] {
		if k == ancestor {
			return true
		}
	}
	return false
}

// Lineage returns kind followed by its ancestors, nearest first.
func (r *Registry) Lineage(kind domain.Kind) []domain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Kind
	for k := kind; k != ""; k = r.parents[k] {
		out = append(out, k)
	}
	return out
}

// Kinds returns every registered kind, sorted by name.
func (r *Registry) Kinds() []domain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Kind, 0, len(r.parents))
	for k := range r.parents {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Classify maps a node to its capability: physics bodies are collision
// volumes, areas are trigger volumes, everything else is generic.
func (r *Registry) Classify(n *domain.Node) domain.Capability {
	switch {
	case n == nil:
		return domain.CapabilityGeneric
	case r.Inherits(n.Kind, KindPhysicsBody3D):
		return domain.CapabilityCollisionVolume
	case r.Inherits(n.Kind, KindArea3D):
		return domain.CapabilityTriggerVolume
	default:
		return domain.CapabilityGeneric
	}
}
