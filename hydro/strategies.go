package hydro

import (
	"fmt"
	"strings"
)

// ReconstructionMethod and RiemannSolver are fixed per-simulation choices,
// parsed once from the input file. Inside the sweep kernels an unrecognized
// value falls through to a no-op; validity is the caller's problem and is
// checked here at parse time, never per cell.

type ReconstructionMethod uint

const (
	RECON_DonorCell ReconstructionMethod = iota
	RECON_PiecewiseLinear
	RECON_PiecewiseParabolic
)

var (
	ReconNames = map[string]ReconstructionMethod{
		"dc":  RECON_DonorCell,
		"plm": RECON_PiecewiseLinear,
		"ppm": RECON_PiecewiseParabolic,
	}
	ReconPrintNames = []string{"Donor Cell", "Piecewise Linear", "Piecewise Parabolic"}
)

func (rm ReconstructionMethod) Print() (txt string) {
	txt = ReconPrintNames[rm]
	return
}

func NewReconstructionMethod(label string) (rm ReconstructionMethod) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if rm, ok = ReconNames[label]; !ok {
		err = fmt.Errorf("unable to use reconstruction method named %s", label)
		panic(err)
	}
	return
}

// GhostDepth is the number of ghost cells the method's stencil reaches past
// the loop index; AllocateBuffers must provide Ng >= GhostDepth+1.
func (rm ReconstructionMethod) GhostDepth() int {
	switch rm {
	case RECON_PiecewiseLinear:
		return 1
	case RECON_PiecewiseParabolic:
		return 2
	default:
		return 0
	}
}

type RiemannSolver uint

const (
	RSOLVER_Advect RiemannSolver = iota
	RSOLVER_LLF
	RSOLVER_HLLC
	RSOLVER_Roe
)

var (
	RSolverNames = map[string]RiemannSolver{
		"advect": RSOLVER_Advect,
		"llf":    RSOLVER_LLF,
		"hllc":   RSOLVER_HLLC,
		"roe":    RSOLVER_Roe,
	}
	RSolverPrintNames = []string{"Advection", "Local Lax-Friedrichs", "HLLC", "Roe"}
)

func (rs RiemannSolver) Print() (txt string) {
	txt = RSolverPrintNames[rs]
	return
}

func NewRiemannSolver(label string) (rs RiemannSolver) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if rs, ok = RSolverNames[label]; !ok {
		err = fmt.Errorf("unable to use Riemann solver named %s", label)
		panic(err)
	}
	return
}
