package brfss

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A CSVReader reads one annual survey export in CSV form into an array
// of Series objects.  BRFSS CSV exports always carry a header row naming
// the variables.  Column types are inferred from an initial block of
// records: a column whose non-blank values all parse as numbers becomes
// float64, anything else becomes string.  Blank fields are missing.
type CSVReader struct {

	// The column names, read from the header.
	ColumnNames []string

	// User-specified data types (maps column name to "float64" or
	// "string"), overriding inference.
	TypeHints map[string]string

	// The inferred or hinted data type for each column.
	DataTypes []string

	initRun bool

	// Records buffered during type inference.
	lines [][]string

	csvreader *csv.Reader
}

// NewCSVReader returns a CSVReader reading CSV data from r.
func NewCSVReader(r io.Reader) *CSVReader {

	rdr := &CSVReader{
		csvreader: csv.NewReader(r),
	}
	rdr.csvreader.FieldsPerRecord = -1

	return rdr
}

// init reads the header and an inference block of up to 100 records.
func (rdr *CSVReader) init() error {

	header, err := rdr.csvreader.Read()
	if err == io.EOF {
		return fmt.Errorf("file appears to be empty")
	} else if err != nil {
		return err
	}
	rdr.ColumnNames = header

	rdr.lines = make([][]string, 0, 100)
	for k := 0; k < 100; k++ {
		v, err := rdr.csvreader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		rdr.lines = append(rdr.lines, v)
	}

	rdr.sniffTypes()
	rdr.initRun = true

	return nil
}

// sniffTypes decides a type for every column from the buffered records,
// honoring any hints.
func (rdr *CSVReader) sniffTypes() {

	nFloats, nObs := rdr.countFloats()

	rdr.DataTypes = make([]string, len(rdr.ColumnNames))
	for j, col := range rdr.ColumnNames {
		if t, ok := rdr.TypeHints[col]; ok {
			rdr.DataTypes[j] = t
			continue
		}
		if j < len(nObs) && nFloats[j] == nObs[j] && nObs[j] > 0 {
			rdr.DataTypes[j] = "float64"
		} else {
			rdr.DataTypes[j] = "string"
		}
	}
}

// countFloats returns, per column, how many buffered values parse as
// float64 and how many are non-blank.
func (rdr *CSVReader) countFloats() ([]int, []int) {

	m := len(rdr.ColumnNames)
	numFloats := make([]int, m)
	numObs := make([]int, m)

	for _, line := range rdr.lines {
		for j, y := range line {
			if j >= m {
				break
			}
			y = strings.TrimSpace(y)
			if len(y) == 0 {
				continue
			}
			numObs[j]++
			if _, err := strconv.ParseFloat(y, 64); err == nil {
				numFloats[j]++
			}
		}
	}

	return numFloats, numObs
}

// Read reads the whole file and returns the results as an array of
// Series objects, one per column.  Blank or short fields become missing
// values, never zeros.
func (rdr *CSVReader) Read() ([]*Series, error) {

	if !rdr.initRun {
		if err := rdr.init(); err != nil {
			return nil, err
		}
	}

	ncol := len(rdr.ColumnNames)
	dataArray := make([]interface{}, ncol)
	miss := make([][]bool, ncol)
	for j := range rdr.ColumnNames {
		switch rdr.DataTypes[j] {
		case "float64":
			dataArray[j] = make([]float64, 0, 100)
		default:
			dataArray[j] = make([]string, 0, 100)
		}
		miss[j] = make([]bool, 0, 100)
	}

	for {
		var line []string
		if len(rdr.lines) > 0 {
			line = rdr.lines[0]
			rdr.lines = rdr.lines[1:]
		} else {
			var err error
			line, err = rdr.csvreader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				return nil, err
			}
		}

		for j := 0; j < ncol; j++ {
			var field string
			if j < len(line) {
				field = strings.TrimSpace(line[j])
			}

			switch rdr.DataTypes[j] {
			case "float64":
				x, err := strconv.ParseFloat(field, 64)
				if err != nil {
					dataArray[j] = append(dataArray[j].([]float64), 0)
					miss[j] = append(miss[j], true)
				} else {
					dataArray[j] = append(dataArray[j].([]float64), x)
					miss[j] = append(miss[j], false)
				}
			default:
				if field == "" {
					dataArray[j] = append(dataArray[j].([]string), "")
					miss[j] = append(miss[j], true)
				} else {
					dataArray[j] = append(dataArray[j].([]string), field)
					miss[j] = append(miss[j], false)
				}
			}
		}
	}

	dataSeries := make([]*Series, ncol)
	for j := 0; j < ncol; j++ {
		var err error
		dataSeries[j], err = NewSeries(rdr.ColumnNames[j], dataArray[j], miss[j])
		if err != nil {
			return nil, err
		}
	}

	return dataSeries, nil
}
