package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title         string  `yaml:"Title"`
	CFL           float64 `yaml:"CFL"`
	FinalTime     float64 `yaml:"FinalTime"`
	MaxSteps      int     `yaml:"MaxSteps"`
	ReconType     string  `yaml:"ReconType"` // "dc", "plm" or "ppm"
	FluxType      string  `yaml:"FluxType"`  // "advect", "llf", "hllc" or "roe"
	InitType      string  `yaml:"InitType"`  // "uniform", "linear", "advect" or "sod"
	EOS           string  `yaml:"EOS"`       // "ideal" or "isothermal"
	Gamma         float64 `yaml:"Gamma"`
	IsoSoundSpeed float64 `yaml:"IsoSoundSpeed"`
	Nx1           int     `yaml:"Nx1"` // interior cells per block, per dimension
	Nx2           int     `yaml:"Nx2"`
	Nx3           int     `yaml:"Nx3"`
	NBlocks1      int     `yaml:"NBlocks1"` // blocks per dimension
	NBlocks2      int     `yaml:"NBlocks2"`
	NBlocks3      int     `yaml:"NBlocks3"`
	NGhost        int     `yaml:"NGhost"`
	NRanks        int     `yaml:"NRanks"`
	X1Size        float64 `yaml:"X1Size"` // physical domain extents
	X2Size        float64 `yaml:"X2Size"`
	X3Size        float64 `yaml:"X3Size"`
	Periodic      bool    `yaml:"Periodic"`
}

func (ip *InputParameters) Parse(data []byte) error {
	ip.setDefaults()
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) setDefaults() {
	ip.CFL = 0.3
	ip.MaxSteps = 1 << 30
	ip.ReconType = "plm"
	ip.FluxType = "hllc"
	ip.InitType = "advect"
	ip.EOS = "ideal"
	ip.Gamma = 5.0 / 3.0
	ip.IsoSoundSpeed = 1.0
	ip.Nx2, ip.Nx3 = 1, 1
	ip.NBlocks1, ip.NBlocks2, ip.NBlocks3 = 1, 1, 1
	ip.NGhost = 2
	ip.NRanks = 1
	ip.X1Size, ip.X2Size, ip.X3Size = 1.0, 1.0, 1.0
	ip.Periodic = true
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Reconstruction\n", ip.ReconType)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("[%s]\t\t\t= EOS\n", ip.EOS)
	fmt.Printf("[%d,%d,%d]\t\t= Cells per block\n", ip.Nx1, ip.Nx2, ip.Nx3)
	fmt.Printf("[%d,%d,%d]\t\t= Blocks\n", ip.NBlocks1, ip.NBlocks2, ip.NBlocks3)
	fmt.Printf("[%d]\t\t\t\t= Ghost cells\n", ip.NGhost)
	fmt.Printf("[%d]\t\t\t\t= Ranks\n", ip.NRanks)
}
