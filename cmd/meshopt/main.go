// Command meshopt is the CLI front end of SPEC_FULL.md §A: "meshopt
// optimize <mesh.json>" runs one scheduler pass sequence over a loaded
// mesh, "meshopt bench <mesh.json>" drives the raw-throughput spin loop
// instead. Grounded on jhkimqd-chaos-utils/cmd/chaos-runner's
// cobra.Command root/subcommand wiring.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "meshopt",
	Short: "Anisotropic 3-D mesh quality optimizer",
	Long: `meshopt loads a tetrahedral/prismatic/hexahedral mesh, runs the
relocation/refinement/topology optimization schedule against it, and
reports per-pass quality statistics.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
