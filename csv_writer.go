package brfss

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes a table in CSV form: a header row of column names,
// then one row per record.  Missing values become empty fields.  Numeric
// values are written with the shortest representation that round-trips,
// so writing the same table twice produces identical bytes.
func WriteCSV(w io.Writer, t *Table) error {

	cw := csv.NewWriter(w)

	names := t.Names()
	if err := cw.Write(names); err != nil {
		return err
	}

	ncol := len(names)
	numberCols := make([][]float64, ncol)
	stringCols := make([][]string, ncol)
	cols := make([]*Series, ncol)

	for j, name := range names {
		col, _ := t.Column(name)
		cols[j] = col
		switch d := col.Data().(type) {
		case []float64:
			numberCols[j] = d
		case []string:
			stringCols[j] = d
		default:
			return fmt.Errorf("column %s: unsupported type %T", name, d)
		}
	}

	row := make([]string, ncol)
	for i := 0; i < t.NumRows(); i++ {
		for j := 0; j < ncol; j++ {
			switch {
			case cols[j].IsMissing(i):
				row[j] = ""
			case numberCols[j] != nil:
				row[j] = strconv.FormatFloat(numberCols[j][i], 'g', -1, 64)
			default:
				row[j] = stringCols[j][i]
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
