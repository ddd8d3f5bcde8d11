package domain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a node's local transform: a 3x3 basis (rotation and scale)
// and an origin (translation). The importer only copies it, it never
// recomputes or normalizes it.
type Transform struct {
	Basis  mgl32.Mat3 `json:"basis" yaml:"basis"`
	Origin mgl32.Vec3 `json:"origin" yaml:"origin"`
}

// IdentityTransform returns the transform that leaves a node in place.
func IdentityTransform() Transform {
	return Transform{Basis: mgl32.Ident3()}
}

// NewTransform composes a transform from translation, rotation and scale.
func NewTransform(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	return Transform{
		Basis:  rotation.Normalize().Mat4().Mat3().Mul3(mgl32.Diag3(scale)),
		Origin: translation,
	}
}

// IsIdentity reports whether t is exactly the identity transform.
func (t Transform) IsIdentity() bool {
	return t.Equal(IdentityTransform())
}

// Equal compares two transforms component by component without tolerance.
func (t Transform) Equal(o Transform) bool {
	return t.Basis == o.Basis && t.Origin == o.Origin
}

// Values returns the twelve components in scene file order: the basis row
// by row, then the origin.
func (t Transform) Values() [12]float32 {
	var v [12]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			v[row*3+col] = t.Basis.At(row, col)
		}
	}
	v[9], v[10], v[11] = t.Origin[0], t.Origin[1], t.Origin[2]
	return v
}

// TransformFromValues is the inverse of [Transform.Values].
func TransformFromValues(v [12]float32) Transform {
	return Transform{
		Basis: mgl32.Mat3FromRows(
			mgl32.Vec3{v[0], v[1], v[2]},
			mgl32.Vec3{v[3], v[4], v[5]},
			mgl32.Vec3{v[6], v[7], v[8]},
		),
		Origin: mgl32.Vec3{v[9], v[10], v[11]},
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform3D%v", t.Values())
}
