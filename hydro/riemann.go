package hydro

import (
	"math"

	"github.com/notargets/gomhd/utils"
)

// Riemann solvers compute the upwind flux of conserved quantities at every
// interface i in [il,iu] from reconstructed left/right primitive states.
// ivx names the velocity component normal to the interface for the current
// sweep; the two transverse components follow cyclically. The flux output
// may alias wl (the sliding-window sweeps reuse that scratch), so every
// kernel reads the full state at i before writing any flux row at i.

// Advect upwinds density on the local normal velocity and carries no
// momentum or energy flux; it is the trivial solver used for verification.
func Advect(eos EOSData, il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		nvar = eos.NVars()
		dl   = wl.Row(IDN)
		dr   = wr.Row(IDN)
		vl   = wl.Row(ivx)
		vr   = wr.Row(ivx)
	)
	for i := il; i <= iu; i++ {
		dli, dri, vli, vri := dl[i], dr[i], vl[i], vr[i]
		var f float64
		if vli >= 0 {
			f = dli * vli
		} else {
			f = dri * vri
		}
		flx.Row(IDN)[i] = f
		for n := 1; n < nvar; n++ {
			flx.Row(n)[i] = 0
		}
	}
}

// LLF is the local Lax-Friedrichs (Rusanov) flux: the arithmetic mean of the
// physical fluxes minus maximal-wavespeed dissipation.
func LLF(eos EOSData, il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		ivy = ((ivx - IVX + 1) % 3) + IVX
		ivz = ((ivx - IVX + 2) % 3) + IVX
	)
	for i := il; i <= iu; i++ {
		sl := readState(eos, wl, i, ivx, ivy, ivz)
		sr := readState(eos, wr, i, ivx, ivy, ivz)

		a := math.Max(math.Abs(sl.vx)+sl.cs, math.Abs(sr.vx)+sr.cs)

		fd := 0.5*(sl.d*sl.vx+sr.d*sr.vx) - 0.5*a*(sr.d-sl.d)
		fmx := 0.5*(sl.d*sl.vx*sl.vx+sl.p+sr.d*sr.vx*sr.vx+sr.p) - 0.5*a*(sr.d*sr.vx-sl.d*sl.vx)
		fmy := 0.5*(sl.d*sl.vx*sl.vy+sr.d*sr.vx*sr.vy) - 0.5*a*(sr.d*sr.vy-sl.d*sl.vy)
		fmz := 0.5*(sl.d*sl.vx*sl.vz+sr.d*sr.vx*sr.vz) - 0.5*a*(sr.d*sr.vz-sl.d*sl.vz)

		flx.Row(IDN)[i] = fd
		flx.Row(ivx)[i] = fmx
		flx.Row(ivy)[i] = fmy
		flx.Row(ivz)[i] = fmz
		if eos.IsIdeal {
			fe := 0.5*((sl.e+sl.p)*sl.vx+(sr.e+sr.p)*sr.vx) - 0.5*a*(sr.e-sl.e)
			flx.Row(IEN)[i] = fe
		}
	}
}

// HLLC resolves the contact wave in addition to the outer acoustic waves.
// Ideal-gas only; configuration validation rejects it for isothermal runs.
func HLLC(eos EOSData, il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		ivy = ((ivx - IVX + 1) % 3) + IVX
		ivz = ((ivx - IVX + 2) % 3) + IVX
	)
	for i := il; i <= iu; i++ {
		sl := readState(eos, wl, i, ivx, ivy, ivz)
		sr := readState(eos, wr, i, ivx, ivy, ivz)

		// wave speed estimates (Davis)
		ssl := math.Min(sl.vx-sl.cs, sr.vx-sr.cs)
		ssr := math.Max(sl.vx+sl.cs, sr.vx+sr.cs)

		mdl := sl.d * (ssl - sl.vx)
		mdr := sr.d * (ssr - sr.vx)
		sm := (sr.p - sl.p + mdl*sl.vx - mdr*sr.vx) / (mdl - mdr)

		var fd, fmx, fmy, fmz, fe float64
		switch {
		case ssl >= 0:
			fd, fmx, fmy, fmz, fe = physFlux(sl)
		case ssr <= 0:
			fd, fmx, fmy, fmz, fe = physFlux(sr)
		case sm >= 0:
			fd, fmx, fmy, fmz, fe = starFlux(sl, ssl, sm)
		default:
			fd, fmx, fmy, fmz, fe = starFlux(sr, ssr, sm)
		}

		flx.Row(IDN)[i] = fd
		flx.Row(ivx)[i] = fmx
		flx.Row(ivy)[i] = fmy
		flx.Row(ivz)[i] = fmz
		flx.Row(IEN)[i] = fe
	}
}

// Roe uses the Roe-averaged eigen decomposition; no entropy fix, as the
// dissipation of the averaged waves is sufficient for the smooth and
// shock-tube problems this code targets. Ideal-gas only.
func Roe(eos EOSData, il, iu, ivx int, wl, wr, flx utils.Matrix) {
	var (
		ivy = ((ivx - IVX + 1) % 3) + IVX
		ivz = ((ivx - IVX + 2) % 3) + IVX
		gm1 = eos.Gamma - 1.0
	)
	for i := il; i <= iu; i++ {
		sl := readState(eos, wl, i, ivx, ivy, ivz)
		sr := readState(eos, wr, i, ivx, ivy, ivz)

		sqdl := math.Sqrt(sl.d)
		sqdr := math.Sqrt(sr.d)
		isd := 1.0 / (sqdl + sqdr)
		u := (sqdl*sl.vx + sqdr*sr.vx) * isd
		v := (sqdl*sl.vy + sqdr*sr.vy) * isd
		w := (sqdl*sl.vz + sqdr*sr.vz) * isd
		hl := (sl.e + sl.p) / sl.d
		hr := (sr.e + sr.p) / sr.d
		h := (sqdl*hl + sqdr*hr) * isd
		q2 := u*u + v*v + w*w
		a := math.Sqrt(gm1 * (h - 0.5*q2))

		// conserved jumps
		du1 := sr.d - sl.d
		du2 := sr.d*sr.vx - sl.d*sl.vx
		du3 := sr.d*sr.vy - sl.d*sl.vy
		du4 := sr.d*sr.vz - sl.d*sl.vz
		du5 := sr.e - sl.e

		// wave strengths
		av := du3 - v*du1
		aw := du4 - w*du1
		du5p := du5 - av*v - aw*w
		a2 := gm1 / (a * a) * (du1*(h-u*u) + u*du2 - du5p)
		a1 := (du1*(u+a) - du2 - a*a2) / (2.0 * a)
		a5 := du1 - (a1 + a2)

		l1 := math.Abs(u - a)
		l2 := math.Abs(u)
		l5 := math.Abs(u + a)

		fdl, fmxl, fmyl, fmzl, fel := physFlux(sl)
		fdr, fmxr, fmyr, fmzr, fer := physFlux(sr)

		fd := 0.5 * (fdl + fdr)
		fmx := 0.5 * (fmxl + fmxr)
		fmy := 0.5 * (fmyl + fmyr)
		fmz := 0.5 * (fmzl + fmzr)
		fe := 0.5 * (fel + fer)

		fd -= 0.5 * (a1*l1 + a2*l2 + a5*l5)
		fmx -= 0.5 * (a1*l1*(u-a) + a2*l2*u + a5*l5*(u+a))
		fmy -= 0.5 * (a1*l1*v + a2*l2*v + l2*av + a5*l5*v)
		fmz -= 0.5 * (a1*l1*w + a2*l2*w + l2*aw + a5*l5*w)
		fe -= 0.5 * (a1*l1*(h-u*a) + a2*l2*0.5*q2 + l2*(av*v+aw*w) + a5*l5*(h+u*a))

		flx.Row(IDN)[i] = fd
		flx.Row(ivx)[i] = fmx
		flx.Row(ivy)[i] = fmy
		flx.Row(ivz)[i] = fmz
		flx.Row(IEN)[i] = fe
	}
}

// state is one reconstructed interface state rotated into sweep coordinates
type state struct {
	d, vx, vy, vz, p, e, cs float64
}

func readState(eos EOSData, ws utils.Matrix, i, ivx, ivy, ivz int) (s state) {
	s.d = ws.Row(IDN)[i]
	s.vx = ws.Row(ivx)[i]
	s.vy = ws.Row(ivy)[i]
	s.vz = ws.Row(ivz)[i]
	if eos.IsIdeal {
		s.p = ws.Row(IPR)[i]
		s.e = s.p/(eos.Gamma-1.0) + 0.5*s.d*(s.vx*s.vx+s.vy*s.vy+s.vz*s.vz)
	} else {
		s.p = eos.IsoCs * eos.IsoCs * s.d
	}
	s.cs = eos.SoundSpeed(s.p, s.d)
	return
}

// physFlux is the exact Euler flux of one state in sweep coordinates
func physFlux(s state) (fd, fmx, fmy, fmz, fe float64) {
	fd = s.d * s.vx
	fmx = s.d*s.vx*s.vx + s.p
	fmy = s.d * s.vx * s.vy
	fmz = s.d * s.vx * s.vz
	fe = (s.e + s.p) * s.vx
	return
}

// starFlux is the HLLC flux through the star region on side s with outer
// wave speed ss and contact speed sm
func starFlux(s state, ss, sm float64) (fd, fmx, fmy, fmz, fe float64) {
	fd0, fmx0, fmy0, fmz0, fe0 := physFlux(s)
	ds := s.d * (ss - s.vx) / (ss - sm)
	ps := s.p + s.d*(ss-s.vx)*(sm-s.vx)
	es := ((ss-s.vx)*s.e - s.p*s.vx + ps*sm) / (ss - sm)

	fd = fd0 + ss*(ds-s.d)
	fmx = fmx0 + ss*(ds*sm-s.d*s.vx)
	fmy = fmy0 + ss*(ds*s.vy-s.d*s.vy)
	fmz = fmz0 + ss*(ds*s.vz-s.d*s.vz)
	fe = fe0 + ss*(es-s.e)
	return
}
