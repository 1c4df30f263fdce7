package sdf

import (
	"math"
	"testing"
)

func TestBoxInertia_AnalyticValues(t *testing.T) {
	// Solid box m=12, dims (1, 2, 3): ixx = (2²+3²) = 13, iyy = (1²+3²) = 10,
	// izz = (1²+2²) = 5.
	got := BoxInertia(12, V3(1, 2, 3))
	want := Inertia{Ixx: 13, Iyy: 10, Izz: 5}
	if got != want {
		t.Errorf("BoxInertia = %+v, want %+v", got, want)
	}
}

func TestBoxInertia_Validates(t *testing.T) {
	for _, size := range []Vec3{V3(0.8, 0.8, 0.8), V3(10, 4, 0.1), V3(0.02, 5, 0.3)} {
		in := BoxInertial(5, size)
		if err := in.Validate(); err != nil {
			t.Errorf("box %v: Validate() = %v, want nil", size, err)
		}
	}
}

func TestInertiaValidate_RejectsNonPositiveDiagonal(t *testing.T) {
	bad := Inertia{Ixx: -1, Iyy: 1, Izz: 1}
	if err := bad.Validate(); err == nil {
		t.Error("negative ixx validated, want error")
	}
	zero := Inertia{Ixx: 1, Iyy: 0, Izz: 1}
	if err := zero.Validate(); err == nil {
		t.Error("zero iyy validated, want error")
	}
}

func TestInertiaValidate_RejectsTriangleViolation(t *testing.T) {
	// izz exceeds ixx+iyy: no mass distribution produces these moments.
	bad := Inertia{Ixx: 1, Iyy: 1, Izz: 3}
	if err := bad.Validate(); err == nil {
		t.Error("triangle-violating tensor validated, want error")
	}
}

func TestInertiaValidate_RejectsIndefinite(t *testing.T) {
	// Large off-diagonal coupling drives an eigenvalue negative.
	bad := Inertia{Ixx: 1, Iyy: 1, Izz: 1, Ixy: 2}
	if err := bad.Validate(); err == nil {
		t.Error("indefinite tensor validated, want error")
	}
}

func TestInertiaValidate_RejectsNonFinite(t *testing.T) {
	bad := Inertia{Ixx: 1, Iyy: 1, Izz: math.NaN()}
	if err := bad.Validate(); err == nil {
		t.Error("NaN tensor validated, want error")
	}
}

func TestPrincipalMoments_DiagonalTensor(t *testing.T) {
	moments, err := Inertia{Ixx: 3, Iyy: 1, Izz: 2}.PrincipalMoments()
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float64{1, 2, 3}
	for i := range want {
		if math.Abs(moments[i]-want[i]) > 1e-12 {
			t.Errorf("moments = %v, want %v", moments, want)
			break
		}
	}
}
