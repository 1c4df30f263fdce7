package sdf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// pdTolerance absorbs floating-point slack in the principal moment checks.
const pdTolerance = 1e-9

// BoxInertia returns the inertia tensor of a solid box of the given mass and
// edge lengths about its center of mass.
func BoxInertia(mass float64, size Vec3) Inertia {
	c := mass / 12.0
	return Inertia{
		Ixx: c * (size.Y*size.Y + size.Z*size.Z),
		Iyy: c * (size.X*size.X + size.Z*size.Z),
		Izz: c * (size.X*size.X + size.Y*size.Y),
	}
}

// BoxInertial returns a complete inertial block for a solid box.
func BoxInertial(mass float64, size Vec3) *Inertial {
	return &Inertial{Mass: mass, Inertia: BoxInertia(mass, size)}
}

// Validate checks mass positivity and tensor plausibility.
func (in *Inertial) Validate() error {
	if in.Mass <= 0 {
		return fmt.Errorf("inertial mass must be positive, got %g", in.Mass)
	}
	if in.Pose != nil && !in.Pose.IsFinite() {
		return fmt.Errorf("inertial pose has non-finite components")
	}
	if err := in.Inertia.Validate(); err != nil {
		return fmt.Errorf("inertia: %w", err)
	}
	return nil
}

// Validate checks that the tensor describes a physically realizable rigid
// body: finite entries, positive diagonal, positive-definite matrix, and
// principal moments satisfying the triangle inequality. Definiteness and the
// principal moments come from an eigendecomposition of the symmetric tensor.
func (t Inertia) Validate() error {
	if !allFinite(t.Ixx, t.Ixy, t.Ixz, t.Iyy, t.Iyz, t.Izz) {
		return fmt.Errorf("tensor has non-finite entries")
	}
	if t.Ixx <= 0 || t.Iyy <= 0 || t.Izz <= 0 {
		return fmt.Errorf("diagonal moments must be positive, got ixx=%g iyy=%g izz=%g", t.Ixx, t.Iyy, t.Izz)
	}
	moments, err := t.PrincipalMoments()
	if err != nil {
		return err
	}
	for _, m := range moments {
		if m <= pdTolerance {
			return fmt.Errorf("tensor is not positive definite (principal moments %v)", moments)
		}
	}
	// Principal moments of any mass distribution obey i + j >= k.
	if moments[0]+moments[1] < moments[2]*(1-pdTolerance) {
		return fmt.Errorf("principal moments %v violate the triangle inequality", moments)
	}
	return nil
}

// PrincipalMoments returns the tensor's eigenvalues in ascending order.
func (t Inertia) PrincipalMoments() ([3]float64, error) {
	sym := mat.NewSymDense(3, []float64{
		t.Ixx, t.Ixy, t.Ixz,
		t.Ixy, t.Iyy, t.Iyz,
		t.Ixz, t.Iyz, t.Izz,
	})
	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return [3]float64{}, fmt.Errorf("tensor eigendecomposition failed")
	}
	vals := eig.Values(nil)
	return [3]float64{vals[0], vals[1], vals[2]}, nil
}
