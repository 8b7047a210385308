// Package lammps extracts thermodynamic output sections from LAMMPS log
// files. A section starts at a header line such as
//
//	Step Temp PotEng KinEng Press Volume
//
// and collects every following row whose fields all parse as numbers.
package lammps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Section is one contiguous block of thermo output: the column headers and
// the numeric rows recorded under them.
type Section struct {
	Headers []string
	Rows    [][]float64
}

// Column returns the values of the named column, or false when the section
// does not carry it.
func (s Section) Column(name string) ([]float64, bool) {
	idx := -1
	for i, h := range s.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// ParseLog scans r for thermo sections. Malformed input never yields an
// error: a row that fails numeric conversion closes the current section,
// rows with a field count different from the header are dropped, and blank
// lines, "Loop" summaries and "#" comments are skipped. Only sections with
// at least one row are returned.
func ParseLog(r io.Reader) []Section {
	var (
		sections []Section
		headers  []string
		rows     [][]float64
	)

	flush := func() {
		if headers != nil && len(rows) > 0 {
			sections = append(sections, Section{Headers: headers, Rows: rows})
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "Loop") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "Step") && strings.Contains(line, "Temp") {
			flush()
			headers = strings.Fields(line)
			rows = nil
			continue
		}
		if headers == nil {
			continue
		}

		fields := strings.Fields(line)
		vals := make([]float64, 0, len(fields))
		numeric := true
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				numeric = false
				break
			}
			vals = append(vals, v)
		}
		if !numeric {
			// Anything non-numeric past the data ends the section.
			if len(rows) > 0 {
				flush()
				headers = nil
				rows = nil
			}
			continue
		}
		if len(vals) == len(headers) {
			rows = append(rows, vals)
		}
	}
	flush()
	return sections
}

// ParseLogFile parses the log at path. Files ending in .gz are
// decompressed on the fly.
func ParseLogFile(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip log %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return ParseLog(r), nil
}

// LastSection returns the most recent section, which reflects the run's
// current thermodynamic state. ok is false when no section parsed.
func LastSection(sections []Section) (Section, bool) {
	if len(sections) == 0 {
		return Section{}, false
	}
	return sections[len(sections)-1], true
}
