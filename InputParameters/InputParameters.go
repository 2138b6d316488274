package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ConvergenceParameters struct {
	Title           string               `yaml:"Title"`
	CFL             float64              `yaml:"CFL"`
	FluxType        string               `yaml:"FluxType"`
	TimeIntegrator  string               `yaml:"TimeIntegrator"`
	PolynomialOrder int                  `yaml:"PolynomialOrder"`
	FinalTime       float64              `yaml:"FinalTime"`
	Gamma           float64              `yaml:"Gamma"`
	Beta            float64              `yaml:"Beta"`
	Levels          int                  `yaml:"Levels"`
	BaseElements    int                  `yaml:"BaseElements"`
	Dimensions      []int                `yaml:"Dimensions"`
	Precisions      []string             `yaml:"Precisions"`
	RandomInit      bool                 `yaml:"RandomInit"`
	RandomSeed      int64                `yaml:"RandomSeed"`
	SnapshotFile    string               `yaml:"SnapshotFile"`
	ExpectedErrors  map[string][]float64 `yaml:"ExpectedErrors"` // keyed case-precision-dim, one value per level
	ErrorTolerance  float64              `yaml:"ErrorTolerance"`
}

func (cp *ConvergenceParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *ConvergenceParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", cp.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", cp.FinalTime)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", cp.FluxType)
	fmt.Printf("[%s]\t\t= Time Integrator\n", cp.TimeIntegrator)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", cp.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Levels\n", cp.Levels)
	fmt.Printf("[%d]\t\t\t\t= Base Elements\n", cp.BaseElements)
	fmt.Printf("%v\t\t\t= Dimensions\n", cp.Dimensions)
	fmt.Printf("%v\t= Precisions\n", cp.Precisions)
	keys := make([]string, len(cp.ExpectedErrors))
	i := 0
	for k := range cp.ExpectedErrors {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("ExpectedErrors[%s] = %v\n", key, cp.ExpectedErrors[key])
	}
}
