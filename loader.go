package brfss

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilePattern locates one year's source file within the data
// directory.  BRFSS combined landline/cell releases are named LLCP
// followed by the survey year.
const DefaultFilePattern = "LLCP%d.csv"

// A Loader reads a span of annual survey files and stacks them into one
// surveyyear-tagged table.
type Loader struct {

	// Directory holding the per-year source files.
	DataDir string

	// File name pattern with one %d verb for the year.  If empty,
	// DefaultFilePattern is used.
	FilePattern string
}

// NewLoader returns a Loader reading from the given directory with the
// default file naming convention.
func NewLoader(dataDir string) *Loader {
	return &Loader{DataDir: dataDir}
}

func (ld *Loader) path(year int) string {
	pat := ld.FilePattern
	if pat == "" {
		pat = DefaultFilePattern
	}
	return filepath.Join(ld.DataDir, fmt.Sprintf(pat, year))
}

// loadYear reads one year's file and returns it as a table with the
// surveyyear column injected.  Source values pass through unmodified.
func (ld *Loader) loadYear(year int) (*Table, error) {

	fname := ld.path(year)
	fid, err := os.Open(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Year: year, Path: fname}
		}
		return nil, err
	}
	defer fid.Close()

	cols, err := NewCSVReader(fid).Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}

	nrow := 0
	if len(cols) > 0 {
		nrow = cols[0].Length()
	}
	cols = append([]*Series{NewConstSeries(YearColumn, float64(year), nrow)}, cols...)

	return NewTable(cols)
}

// Load reads the source files for every year in [startYear, endYear] and
// appends them, ascending by year, into one union-schema table.  A
// missing file for any requested year is a *MissingFileError; all file
// paths are checked before any record is read.  Years are read on
// concurrent goroutines, which is safe because they share nothing, and
// reassembled in year order so the output matches a sequential load.
func (ld *Loader) Load(startYear, endYear int) (*Table, error) {

	if endYear < startYear {
		return nil, fmt.Errorf("end year %d precedes start year %d", endYear, startYear)
	}

	var years []int
	for y := startYear; y <= endYear; y++ {
		years = append(years, y)
	}

	// Fail on absent files up front, before reading any record.
	for _, y := range years {
		if _, err := os.Stat(ld.path(y)); os.IsNotExist(err) {
			return nil, &MissingFileError{Year: y, Path: ld.path(y)}
		}
	}

	type result struct {
		pos   int
		table *Table
		err   error
	}

	ch := make(chan result)
	for i, y := range years {
		go func(pos, year int) {
			t, err := ld.loadYear(year)
			ch <- result{pos: pos, table: t, err: err}
		}(i, y)
	}

	tables := make([]*Table, len(years))
	var firstErr error
	for range years {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		tables[r.pos] = r.table
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return AppendTables(tables...)
}
