package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gomhd/InputParameters"
	"github.com/notargets/gomhd/bvals"
	"github.com/notargets/gomhd/driver"
	"github.com/notargets/gomhd/hydro"
	"github.com/notargets/gomhd/mesh"
)

type ModelSim struct {
	ICFile     string
	Graph      bool
	PlotSteps  int
	Delay      time.Duration
	Procs      int
	Profile    bool
	HWCounters bool
}

// SimCmd represents the sim command
var SimCmd = &cobra.Command{
	Use:   "sim",
	Short: "Block-structured solver driven by a YAML input file",
	Long:  `Block-structured solver driven by a YAML input file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("sim called")
		ms := &ModelSim{}
		if ms.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		ms.Graph, _ = cmd.Flags().GetBool("graph")
		ms.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		dr, _ := cmd.Flags().GetInt("delay")
		ms.Delay = time.Duration(dr) * time.Millisecond
		ms.Procs, _ = cmd.Flags().GetInt("procs")
		ms.Profile, _ = cmd.Flags().GetBool("profile")
		ms.HWCounters, _ = cmd.Flags().GetBool("hwcounters")
		ip := processInput(ms)
		RunSim(ms, ip)
	},
}

func processInput(ms *ModelSim) (ip *InputParameters.InputParameters) {
	var (
		err error
	)
	if len(ms.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Advected Sine Wave"
CFL: 0.3
FinalTime: 1.
ReconType: plm   # Can be "dc", "ppm"
FluxType: hllc   # Can be "advect", "llf", "roe"
InitType: advect # Can be "uniform", "linear", "sod"
Nx1: 64
NBlocks1: 4
NRanks: 2
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(ms.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(SimCmd)
	SimCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- FluxType")
	SimCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	SimCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	SimCmd.Flags().IntP("plotSteps", "s", 1, "number of steps before plotting each frame")
	SimCmd.Flags().IntP("procs", "p", 0, "limit on goroutines per rank, 0 uses all CPUs")
	SimCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	SimCmd.Flags().Bool("hwcounters", false, "report hardware counters for the run (linux only)")
}

func RunSim(ms *ModelSim, ip *InputParameters.InputParameters) {
	var (
		err error
	)
	if ms.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ip.Print()

	dx1 := ip.X1Size / float64(ip.NBlocks1*ip.Nx1)
	dx2 := ip.X2Size / float64(ip.NBlocks2*ip.Nx2)
	dx3 := ip.X3Size / float64(ip.NBlocks3*ip.Nx3)
	indcs := mesh.NewRegionCells(ip.Nx1, ip.Nx2, ip.Nx3, ip.NGhost, dx1, dx2, dx3)
	var msh *mesh.Mesh
	if msh, err = mesh.NewMesh(indcs, ip.NBlocks1, ip.NBlocks2, ip.NBlocks3,
		ip.NRanks, ip.Periodic); err != nil {
		panic(err)
	}
	fmt.Printf("[%d]\t\t\t= Blocks total\n", msh.NmbTotal)
	fmt.Printf("[%d]\t\t\t= Ghost cells crossing rank boundaries per variable\n",
		msh.RemoteCommVolume())

	recon := hydro.NewReconstructionMethod(ip.ReconType)
	rsolver := hydro.NewRiemannSolver(ip.FluxType)
	it := driver.NewInitType(ip.InitType)
	var eos hydro.EOSData
	switch strings.ToLower(ip.EOS) {
	case "ideal":
		eos = hydro.NewAdiabaticEOS(ip.Gamma)
	case "isothermal":
		eos = hydro.NewIsothermalEOS(ip.IsoSoundSpeed)
	default:
		panic(fmt.Errorf("unable to use EOS named %s", ip.EOS))
	}

	var (
		chart     *chart2d.Chart2D
		colorMap  *utils2.ColorMap
		chartName = "Density"
	)
	if ms.Graph {
		chart = chart2d.NewChart2D(1024, 768, 0, float32(ip.X1Size), 0, 2)
		colorMap = utils2.NewColorMap(-1, 1, 1)
		go chart.Plot()
	}

	fab := bvals.NewFabric(ip.NRanks, 0)
	run := func() {
		var wg sync.WaitGroup
		for r := 0; r < ip.NRanks; r++ {
			wg.Add(1)
			go func(r int) {
				defer wg.Done()
				pack := msh.NewPack(r)
				topo := fab.Topo(r)
				h, err := hydro.New(pack, topo, eos, recon, rsolver, ms.Procs)
				if err != nil {
					panic(err)
				}
				drv := driver.NewDriver(pack, topo, h, ip.CFL, ip.FinalTime, ip.MaxSteps)
				drv.Verbose = r == 0
				if ms.Graph && r == 0 {
					drv.StepHook = func(d *driver.Driver) {
						if d.Step%ms.PlotSteps != 0 {
							return
						}
						x, rho := densityProfile(d)
						if err := chart.AddSeries(chartName, x, rho,
							chart2d.CrossGlyph, chart2d.Dashed, colorMap.GetRGB(0)); err != nil {
							panic("unable to add graph series")
						}
						time.Sleep(ms.Delay)
					}
				}
				drv.SetupProblem(it)
				drv.Execute()
				if r == 0 {
					fmt.Printf("completed: %d steps to Time = %8.5f\n", drv.Step, drv.Time)
				}
			}(r)
		}
		wg.Wait()
	}
	if ms.HWCounters {
		runCounted(run)
	} else {
		run()
	}
}

// densityProfile samples the density along x1 through the first interior
// row of every block on the calling rank.
func densityProfile(d *driver.Driver) (x, rho []float64) {
	var (
		pp    = d.Pack
		indcs = pp.Mesh.Indcs
		w0    = d.Hydro.W0
	)
	for m := 0; m < pp.Nmb; m++ {
		for i := indcs.Is; i <= indcs.Ie; i++ {
			x1, _, _ := pp.Mesh.CellCenter(pp.Gids+m, i, indcs.Js, indcs.Ks)
			x = append(x, x1)
			rho = append(rho, w0.At(m, hydro.IDN, indcs.Ks, indcs.Js, i))
		}
	}
	return
}
