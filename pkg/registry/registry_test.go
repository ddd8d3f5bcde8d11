package registry_test

import (
	"testing"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/aretw0/sceneswap/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Classifier = (*registry.Registry)(nil)

func TestRegistry_Classify(t *testing.T) {
	r := registry.Default()

	tests := []struct {
		kind domain.Kind
		want domain.Capability
	}{
		{domain.KindStaticBody3D, domain.CapabilityCollisionVolume},
		{"RigidBody3D", domain.CapabilityCollisionVolume},
		{"AnimatableBody3D", domain.CapabilityCollisionVolume},
		{"CharacterBody3D", domain.CapabilityCollisionVolume},
		{domain.KindArea3D, domain.CapabilityTriggerVolume},
		{domain.KindMeshInstance3D, domain.CapabilityGeneric},
		{domain.KindCollisionShape, domain.CapabilityGeneric},
		{domain.KindNode3D, domain.CapabilityGeneric},
		{"SomethingUnknown", domain.CapabilityGeneric},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(domain.NewNode("N", tt.kind)))
		})
	}
	assert.Equal(t, domain.CapabilityGeneric, r.Classify(nil))
}

func TestRegistry_Register(t *testing.T) {
	r := registry.Default()

	require.NoError(t, r.Register("VehicleBody3D", "RigidBody3D"))
	assert.True(t, r.Known("VehicleBody3D"))
	assert.Equal(t, domain.CapabilityCollisionVolume, r.Classify(domain.NewNode("Car", "VehicleBody3D")))
	assert.Equal(t,
		[]domain.Kind{"VehicleBody3D", "RigidBody3D", registry.KindPhysicsBody3D, "CollisionObject3D", domain.KindNode3D, domain.KindNode},
		r.Lineage("VehicleBody3D"))
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := registry.NewRegistry()

	assert.Error(t, r.Register("", ""))
	assert.Error(t, r.Register("Child", "Missing"))

	require.NoError(t, r.Register("A", ""))
	require.NoError(t, r.Register("B", "A"))
	assert.Error(t, r.Register("A", "B"), "cycles are rejected")
	assert.Equal(t, []domain.Kind{"A", "B"}, r.Kinds())
}

func TestRegistry_Inherits(t *testing.T) {
	r := registry.Default()

	assert.True(t, r.Inherits(domain.KindStaticBody3D, domain.KindNode))
	assert.True(t, r.Inherits("Unknown", "Unknown"))
	assert.False(t, r.Inherits(domain.KindArea3D, registry.KindPhysicsBody3D))
}
