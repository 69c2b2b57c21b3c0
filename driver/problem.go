package driver

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gomhd/hydro"
)

type InitType uint

const (
	INIT_Uniform InitType = iota
	INIT_LinearX1
	INIT_AdvectSine
	INIT_Sod
)

var (
	InitNames = map[string]InitType{
		"uniform": INIT_Uniform,
		"linear":  INIT_LinearX1,
		"advect":  INIT_AdvectSine,
		"sod":     INIT_Sod,
	}
	InitPrintNames = []string{"Uniform", "Linear x1 profile", "Advected sine wave", "Sod shock tube"}
)

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use initial condition named %s", label)
		panic(err)
	}
	return
}

// SetupProblem writes the primitive initial condition into the interior
// cells of every block in the pack, then Initialize makes it consistent.
func (d *Driver) SetupProblem(it InitType) {
	var (
		h     = d.Hydro
		pp    = d.Pack
		m0    = pp.Mesh
		indcs = m0.Indcs
		w0    = h.W0
		ideal = h.PEOS.IsIdeal
	)
	for m := 0; m < pp.Nmb; m++ {
		gid := pp.Gids + m
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				for i := indcs.Is; i <= indcs.Ie; i++ {
					x1, _, _ := m0.CellCenter(gid, i, j, k)
					var d0, vx, p0 float64
					switch it {
					case INIT_Uniform:
						d0, vx, p0 = 1.0, 0.0, 1.0
					case INIT_LinearX1:
						d0, vx, p0 = 1.0+0.1*x1, 1.0, 1.0
					case INIT_AdvectSine:
						d0 = 1.0 + 0.2*math.Sin(2.0*math.Pi*x1/m0.SizeX1())
						vx, p0 = 1.0, 1.0
					case INIT_Sod:
						if x1 < 0.5*m0.SizeX1() {
							d0, vx, p0 = 1.0, 0.0, 1.0
						} else {
							d0, vx, p0 = 0.125, 0.0, 0.1
						}
					}
					w0.Set(m, hydro.IDN, k, j, i, d0)
					w0.Set(m, hydro.IVX, k, j, i, vx)
					w0.Set(m, hydro.IVY, k, j, i, 0.0)
					w0.Set(m, hydro.IVZ, k, j, i, 0.0)
					if ideal {
						w0.Set(m, hydro.IPR, k, j, i, p0)
					}
				}
			}
		}
	}
	d.Initialize()
}
