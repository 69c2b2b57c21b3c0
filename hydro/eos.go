package hydro

import (
	"math"

	"github.com/notargets/gomhd/utils"
)

// Primitive variable indices: density, three velocity components, pressure.
// Conserved variables share the layout with momenta in the velocity slots
// and total energy in the pressure slot. Isothermal runs drop the last slot.
const (
	IDN = 0
	IVX = 1
	IVY = 2
	IVZ = 3
	IPR = 4

	IM1 = 1
	IM2 = 2
	IM3 = 3
	IEN = 4
)

// EOSData carries the constitutive constants used inside the flux kernels.
// Ideal gamma-law gas when IsIdeal, otherwise isothermal with fixed sound
// speed IsoCs. Floors clip unphysical states produced by truncation error.
type EOSData struct {
	Gamma         float64
	IsoCs         float64
	IsIdeal       bool
	DensityFloor  float64
	PressureFloor float64
}

func NewAdiabaticEOS(gamma float64) EOSData {
	return EOSData{
		Gamma:         gamma,
		IsIdeal:       true,
		DensityFloor:  1.0e-30,
		PressureFloor: 1.0e-30,
	}
}

func NewIsothermalEOS(isoCs float64) EOSData {
	return EOSData{
		IsoCs:        isoCs,
		DensityFloor: 1.0e-30,
	}
}

// NVars returns the number of hydro variables: 5 ideal, 4 isothermal
func (e EOSData) NVars() int {
	if e.IsIdeal {
		return 5
	}
	return 4
}

func (e EOSData) SoundSpeed(p, d float64) float64 {
	if e.IsIdeal {
		return math.Sqrt(e.Gamma * p / d)
	}
	return e.IsoCs
}

// ConsToPrim converts conserved to primitive variables over every cell of
// the pack arrays, ghost zones included, applying floors.
func (e EOSData) ConsToPrim(u, w utils.Array5D) {
	var (
		ncell = u.N3 * u.N2 * u.N1
		gm1   = e.Gamma - 1.0
	)
	for m := 0; m < u.Nmb; m++ {
		ud, um1, um2, um3 := u.Block(m, IDN), u.Block(m, IM1), u.Block(m, IM2), u.Block(m, IM3)
		wd, wvx, wvy, wvz := w.Block(m, IDN), w.Block(m, IVX), w.Block(m, IVY), w.Block(m, IVZ)
		if e.IsIdeal {
			ue, wp := u.Block(m, IEN), w.Block(m, IPR)
			for i := 0; i < ncell; i++ {
				d := math.Max(ud[i], e.DensityFloor)
				ud[i] = d
				di := 1.0 / d
				wd[i] = d
				wvx[i] = um1[i] * di
				wvy[i] = um2[i] * di
				wvz[i] = um3[i] * di
				ke := 0.5 * di * (um1[i]*um1[i] + um2[i]*um2[i] + um3[i]*um3[i])
				p := gm1 * (ue[i] - ke)
				if p < e.PressureFloor {
					p = e.PressureFloor
					ue[i] = p/gm1 + ke
				}
				wp[i] = p
			}
		} else {
			for i := 0; i < ncell; i++ {
				d := math.Max(ud[i], e.DensityFloor)
				ud[i] = d
				di := 1.0 / d
				wd[i] = d
				wvx[i] = um1[i] * di
				wvy[i] = um2[i] * di
				wvz[i] = um3[i] * di
			}
		}
	}
}

// PrimToCons is the inverse conversion, used by problem initialization
func (e EOSData) PrimToCons(w, u utils.Array5D) {
	var (
		ncell = u.N3 * u.N2 * u.N1
		igm1  = 1.0 / (e.Gamma - 1.0)
	)
	for m := 0; m < u.Nmb; m++ {
		ud, um1, um2, um3 := u.Block(m, IDN), u.Block(m, IM1), u.Block(m, IM2), u.Block(m, IM3)
		wd, wvx, wvy, wvz := w.Block(m, IDN), w.Block(m, IVX), w.Block(m, IVY), w.Block(m, IVZ)
		for i := 0; i < ncell; i++ {
			d := wd[i]
			ud[i] = d
			um1[i] = d * wvx[i]
			um2[i] = d * wvy[i]
			um3[i] = d * wvz[i]
		}
		if e.IsIdeal {
			ue, wp := u.Block(m, IEN), w.Block(m, IPR)
			for i := 0; i < ncell; i++ {
				d := wd[i]
				ue[i] = wp[i]*igm1 + 0.5*d*(wvx[i]*wvx[i]+wvy[i]*wvy[i]+wvz[i]*wvz[i])
			}
		}
	}
}
