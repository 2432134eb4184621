// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

package fixedpoint

// Vec3 is a three-component Q48.16 vector.
type Vec3 struct {
	X, Y, Z Q
}

// AddVec3 adds two vectors exactly.
func AddVec3(a, b Vec3) Vec3 {
	return Vec3{Add(a.X, b.X), Add(a.Y, b.Y), Add(a.Z, b.Z)}
}

// Quat is a Q48.16 quaternion (w, x, y, z).
type Quat struct {
	W, X, Y, Z Q
}

// IdentityQuat is the no-rotation quaternion.
func IdentityQuat() Quat {
	return Quat{W: FromInt(1)}
}

// MulQuat composes two rotations: applying the result rotates a vector
// the same way applying b then a would.
func MulQuat(a, b Quat, round RoundMode) Quat {
	return Quat{
		W: scalarTerm(a, b, round),
		X: Add(Add(Add(Mul(a.W, b.X, round), Mul(a.X, b.W, round)), Mul(a.Y, b.Z, round)), Neg(Mul(a.Z, b.Y, round))),
		Y: Add(Add(Add(Mul(a.W, b.Y, round), Neg(Mul(a.X, b.Z, round))), Mul(a.Y, b.W, round)), Mul(a.Z, b.X, round)),
		Z: Add(Add(Add(Mul(a.W, b.Z, round), Mul(a.X, b.Y, round)), Neg(Mul(a.Y, b.X, round))), Mul(a.Z, b.W, round)),
	}
}

func scalarTerm(a, b Quat, round RoundMode) Q {
	w := Mul(a.W, b.W, round)
	x := Mul(a.X, b.X, round)
	y := Mul(a.Y, b.Y, round)
	z := Mul(a.Z, b.Z, round)
	return Sub(Sub(Sub(w, x), y), z)
}

// RotateVec3 rotates v by quaternion q using v' = v + 2*w*(q.xyz × v) +
// 2*(q.xyz × (q.xyz × v)), the standard quaternion-vector rotation
// formula that avoids computing the inverse quaternion.
func RotateVec3(q Quat, v Vec3, round RoundMode) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	t := scaleVec3(cross(qv, v), FromInt(2), round)
	uv := cross(qv, t)
	wt := scaleVec3(t, q.W, round)
	return AddVec3(AddVec3(v, wt), uv)
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: Sub(mulRaw(a.Y, b.Z), mulRaw(a.Z, b.Y)),
		Y: Sub(mulRaw(a.Z, b.X), mulRaw(a.X, b.Z)),
		Z: Sub(mulRaw(a.X, b.Y), mulRaw(a.Y, b.X)),
	}
}

func mulRaw(a, b Q) Q {
	return Mul(a, b, Near)
}

func scaleVec3(v Vec3, s Q, round RoundMode) Vec3 {
	return Vec3{Mul(v.X, s, round), Mul(v.Y, s, round), Mul(v.Z, s, round)}
}

// Pose is a rigid transform plus the two non-Euclidean axes the frame
// graph layers onto orientation (incline, roll), carried alongside
// rotation exactly as the original frame graph models them.
type Pose struct {
	Pos     Vec3
	Rot     Quat
	Incline Q
	Roll    Q
}

// IdentityPose is the pose of FrameWorld.
func IdentityPose() Pose {
	return Pose{Rot: IdentityQuat()}
}

// Compose returns the world-space pose of child, given that parent is
// already expressed in world space and child is expressed relative to
// parent.
func Compose(parent, child Pose, round RoundMode) Pose {
	rotatedChildPos := RotateVec3(parent.Rot, child.Pos, round)
	return Pose{
		Pos:     AddVec3(parent.Pos, rotatedChildPos),
		Rot:     MulQuat(parent.Rot, child.Rot, round),
		Incline: Add(parent.Incline, child.Incline),
		Roll:    Add(parent.Roll, child.Roll),
	}
}
