package analysis

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ThermoResult carries the energy summary the pipeline prints at the end
// of the analysis stage.
type ThermoResult struct {
	// EnergyTotal is the total system energy, in eV.
	EnergyTotal float64
	// EnergyNano is the energy contained in the nanoparticles, in eV.
	EnergyNano float64
	// FormationEnergy is per atom, in eV.
	FormationEnergy float64
	// SurfaceEnergy is per unit area, in eV/A^2.
	SurfaceEnergy float64
}

// NanoEnergyShare is the nanoparticle share of the total energy, in [0,1].
func (t *ThermoResult) NanoEnergyShare() float64 {
	if t.EnergyTotal == 0 {
		return 0
	}
	return t.EnergyNano / t.EnergyTotal
}

// ParseThermo reads the key-value energy summary. Values are picked off
// lines carrying the Energy_Total: marker, the format the pipeline
// emits. All four metrics must be present.
func ParseThermo(path string) (*ThermoResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open thermodynamic data: %w", err)
	}
	defer f.Close()

	var res ThermoResult
	found := map[string]bool{}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, "Energy_Total:") {
			continue
		}
		parts := strings.Fields(line)
		for i, part := range parts {
			var dst *float64
			switch part {
			case "Energy_Total:":
				dst = &res.EnergyTotal
			case "Energy_Nano:":
				dst = &res.EnergyNano
			case "Formation_Energy:":
				dst = &res.FormationEnergy
			case "Surface_Energy:":
				dst = &res.SurfaceEnergy
			default:
				continue
			}
			if i+1 >= len(parts) {
				return nil, fmt.Errorf("%s: %s has no value", path, part)
			}
			v, err := strconv.ParseFloat(parts[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value for %s: %w", path, part, err)
			}
			*dst = v
			found[part] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read thermodynamic data: %w", err)
	}
	if len(found) < 4 {
		return nil, fmt.Errorf("%s: incomplete energy summary (%d of 4 metrics)", path, len(found))
	}
	return &res, nil
}
