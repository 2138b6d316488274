/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/jkozdon/canary/InputParameters"
	"github.com/jkozdon/canary/harness"
	"github.com/spf13/cobra"
)

// VortexCmd represents the vortex command
var VortexCmd = &cobra.Command{
	Use:   "vortex",
	Short: "Isentropic vortex convergence study on periodic boxes",
	Long: `
Sweeps the translating isentropic vortex across refinement levels in two and
three dimensions and verifies the measured errors,

canary vortex -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vortex called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		cp := processInput(icFile)
		cp.Print()
		cfg := sweepConfig(cp, verbose)
		res := harness.RunVortex(cfg)
		finishSweep(res, cp)
	},
}

func init() {
	rootCmd.AddCommand(VortexCmd)
	VortexCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file of sweep parameters like:\n\t- CFL\n\t- PolynomialOrder\n\t- Levels")
	VortexCmd.Flags().BoolP("verbose", "v", false, "print per-level progress while solving")
}

func processInput(icFile string) (cp *InputParameters.ConvergenceParameters) {
	var (
		err error
	)
	if len(icFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Vortex Convergence"
CFL: 0.5
FluxType: Rusanov
TimeIntegrator: LSRK45 # Can be "SSPRK33"
PolynomialOrder: 4
FinalTime: 0.25
Levels: 3
BaseElements: 4
Dimensions: [2]
Precisions: [float64]
ErrorTolerance: 1.e-6
# ExpectedErrors:
#   vortex-float64-2d: [1.2e-3, 4.1e-5, 1.4e-6]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(icFile); err != nil {
		panic(err)
	}
	cp = &InputParameters.ConvergenceParameters{}
	if err = cp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func sweepConfig(cp *InputParameters.ConvergenceParameters, verbose bool) harness.Config {
	return harness.Config{
		Title:          cp.Title,
		Order:          cp.PolynomialOrder,
		CFL:            cp.CFL,
		FinalTime:      cp.FinalTime,
		FluxType:       cp.FluxType,
		TimeIntegrator: cp.TimeIntegrator,
		Levels:         cp.Levels,
		BaseElements:   cp.BaseElements,
		Dimensions:     cp.Dimensions,
		Precisions:     cp.Precisions,
		Gamma:          cp.Gamma,
		Beta:           cp.Beta,
		RandomInit:     cp.RandomInit,
		RandomSeed:     cp.RandomSeed,
		Verbose:        verbose,
	}
}

func finishSweep(res *harness.Result, cp *InputParameters.ConvergenceParameters) {
	for i := range res.Sweeps {
		sw := &res.Sweeps[i]
		fmt.Printf("%s:\n", sw.Key())
		for _, rec := range sw.Records {
			fmt.Printf("  level %d: Ne=%4d dofs=%8d steps=%6d err=%.6e dmass=%.2e (%s)\n",
				rec.Level, rec.Elements, rec.Dofs, rec.Steps, rec.Error,
				rec.MassDelta, rec.Elapsed)
		}
		if rates := sw.Rates(); len(rates) > 0 {
			fmt.Printf("  rates: ")
			for _, r := range rates {
				fmt.Printf("%6.3f ", r)
			}
			fmt.Printf("\n")
		}
	}
	var done chan struct{}
	if len(cp.SnapshotFile) != 0 {
		done = res.Snapshot(cp.SnapshotFile)
	}
	err := res.Verify(cp.ExpectedErrors, cp.ErrorTolerance)
	if done != nil {
		<-done
	}
	if err != nil {
		fmt.Printf("%s\n", err.Error())
		os.Exit(1)
	}
	if len(cp.ExpectedErrors) != 0 {
		fmt.Println("verification passed")
	}
}
