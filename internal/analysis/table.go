// Package analysis computes the statistical results of the nanoparticle
// simulation from the .dat tables the pipeline writes to the output
// directory.
package analysis

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadTable reads a whitespace-separated numeric table, skipping the
// first line as a header. Every data row must have the same number of
// columns.
func LoadTable(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q: %w", path, fld, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d",
				path, len(rows)+1, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return rows, nil
}

// Column extracts one column from a table.
func Column(rows [][]float64, idx int) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[idx]
	}
	return out
}
