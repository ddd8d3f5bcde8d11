package domain

// Kind is the host type name of a node, e.g. "StaticBody3D" or "Area3D".
// The set is open; meaning is assigned by a classifier.
type Kind string

// Kinds used by the default configuration.
const (
	KindNode           Kind = "Node"
	KindNode3D         Kind = "Node3D"
	KindMeshInstance3D Kind = "MeshInstance3D"
	KindStaticBody3D   Kind = "StaticBody3D"
	KindArea3D         Kind = "Area3D"
	KindCollisionShape Kind = "CollisionShape3D"
)

// Capability is what the transformer needs to know about a node's kind.
type Capability int

const (
	// CapabilityGeneric covers every kind without special meaning.
	CapabilityGeneric Capability = iota
	// CapabilityCollisionVolume marks physical collision shapes, the
	// replacement source.
	CapabilityCollisionVolume
	// CapabilityTriggerVolume marks non-colliding overlap regions, the
	// replacement target.
	CapabilityTriggerVolume
)

func (c Capability) String() string {
	switch c {
	case CapabilityGeneric:
		return "generic"
	case CapabilityCollisionVolume:
		return "collision volume"
	case CapabilityTriggerVolume:
		return "trigger volume"
	default:
		return "unknown"
	}
}
