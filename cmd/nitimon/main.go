// Command nitimon monitors a LAMMPS nanoparticle-formation pipeline:
// a web dashboard over the running phases and batch report generation
// over the analysis output.
package main

import (
	"os"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
