package mathutil

// Transform places an object in world space: scale, then rotate
// (Euler XYZ, degrees), then translate.
type Transform struct {
	Position Vec3 `json:"position" yaml:"position" toml:"position"`
	Rotation Vec3 `json:"rotation" yaml:"rotation" toml:"rotation"`
	Scale    Vec3 `json:"scale" yaml:"scale" toml:"scale"`
}

// Identity is the transform of an object sitting at the world origin.
var Identity = Transform{Scale: Vec3{1, 1, 1}}

// Matrix returns the local-to-world matrix. A zero Scale is read as 1.
func (t Transform) Matrix() Mat4 {
	s := t.Scale
	if s == (Vec3{}) {
		s = Vec3{1, 1, 1}
	}
	q := EulerToQuat(Deg2Rad(t.Rotation[0]), Deg2Rad(t.Rotation[1]), Deg2Rad(t.Rotation[2]))
	r := Mat3Mul(QuatToMat3(q), Mat3Diag(s[0], s[1], s[2]))
	return FromMat3Translation(r, t.Position)
}

// LocalToWorld maps an object-space point to world space.
func (t Transform) LocalToWorld(p Vec3) Vec3 {
	return t.Matrix().MulPoint(p)
}

// WorldToLocal maps a world-space point into object space.
func (t Transform) WorldToLocal(p Vec3) Vec3 {
	return t.Matrix().AffineInverse().MulPoint(p)
}
