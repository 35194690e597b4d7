package brfss

import (
	"fmt"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// WriteParquet writes a table to a snappy-compressed parquet file at the
// given path.  Numeric columns become optional DOUBLE fields and string
// columns optional BYTE_ARRAY/UTF8 fields; missing values are written as
// parquet nulls.
func WriteParquet(path string, t *Table) error {

	names := t.Names()

	md := make([]string, len(names))
	for j, name := range names {
		col, _ := t.Column(name)
		if col.IsNumeric() {
			md[j] = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", name)
		} else {
			md[j] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", name)
		}
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewCSVWriter(md, fw, 4)
	if err != nil {
		return fmt.Errorf("creating parquet writer for %s: %w", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

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
		}
	}

	rec := make([]*string, ncol)
	for i := 0; i < t.NumRows(); i++ {
		for j := 0; j < ncol; j++ {
			if cols[j].IsMissing(i) {
				rec[j] = nil
				continue
			}
			var s string
			if numberCols[j] != nil {
				s = strconv.FormatFloat(numberCols[j][i], 'g', -1, 64)
			} else {
				s = stringCols[j][i]
			}
			v := s
			rec[j] = &v
		}
		if err := pw.WriteString(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalizing %s: %w", path, err)
	}

	return nil
}
