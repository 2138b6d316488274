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

	"github.com/jkozdon/canary/harness"
	"github.com/spf13/cobra"
)

// SphereCmd represents the sphere command
var SphereCmd = &cobra.Command{
	Use:   "sphere",
	Short: "Scalar advection convergence study on a cubed sphere shell",
	Long: `
Transports a Gaussian bump around a cubed sphere shell under solid-body
rotation, sweeping panel refinement levels and verifying measured errors,

canary sphere -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sphere called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		cp := processInput(icFile)
		cp.Print()
		cfg := sweepConfig(cp, verbose)
		res := harness.RunSphere(cfg)
		finishSweep(res, cp)
	},
}

func init() {
	rootCmd.AddCommand(SphereCmd)
	SphereCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file of sweep parameters like:\n\t- CFL\n\t- PolynomialOrder\n\t- Levels")
	SphereCmd.Flags().BoolP("verbose", "v", false, "print per-level progress while solving")
}
