package brfss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearTable(t *testing.T, year int, cols ...*Series) *Table {
	t.Helper()
	nrow := cols[0].Length()
	all := append([]*Series{NewConstSeries(YearColumn, float64(year), nrow)}, cols...)
	tbl, err := NewTable(all)
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {

	t.Run("rejects unequal column lengths", func(t *testing.T) {
		_, err := NewTable([]*Series{
			NewFloatSeries("a", []float64{1, 2}, nil),
			NewFloatSeries("b", []float64{1}, nil),
		})
		require.Error(t, err)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := NewTable([]*Series{
			NewFloatSeries("a", []float64{1}, nil),
			NewFloatSeries("a", []float64{2}, nil),
		})
		require.Error(t, err)
	})
}

func TestAppendTablesUnionSchema(t *testing.T) {

	// 2017 has SEX, 2019 has _SEX instead; the appended schema is the
	// union, with explicit missing segments where a year lacks a
	// column.
	t1 := yearTable(t, 2017,
		NewFloatSeries("SEX", []float64{1, 2}, nil),
		NewFloatSeries("GENHLTH", []float64{3, 4}, nil))
	t2 := yearTable(t, 2019,
		NewFloatSeries("_SEX", []float64{2}, nil),
		NewFloatSeries("GENHLTH", []float64{5}, nil))

	tbl, err := AppendTables(t1, t2)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{YearColumn, "SEX", "GENHLTH", "_SEX"}, tbl.Names())

	sex, ok := tbl.Column("SEX")
	require.True(t, ok)
	expected := NewFloatSeries("SEX", []float64{1, 2, 0}, []bool{false, false, true})
	eq, j := sex.AllEqual(expected)
	assert.True(t, eq, "SEX differs at %d", j)

	nsex, _ := tbl.Column("_SEX")
	expected = NewFloatSeries("_SEX", []float64{0, 0, 2}, []bool{true, true, false})
	eq, j = nsex.AllEqual(expected)
	assert.True(t, eq, "_SEX differs at %d", j)

	gh, _ := tbl.Column("GENHLTH")
	expected = NewFloatSeries("GENHLTH", []float64{3, 4, 5}, nil)
	eq, j = gh.AllEqual(expected)
	assert.True(t, eq, "GENHLTH differs at %d", j)

	years, err := tbl.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2017, 2019}, years)
}

func TestAppendTablesPreservesOrder(t *testing.T) {

	t1 := yearTable(t, 2011, NewFloatSeries("X", []float64{10, 11}, nil))
	t2 := yearTable(t, 2012, NewFloatSeries("X", []float64{12}, nil))

	tbl, err := AppendTables(t1, t2)
	require.NoError(t, err)

	x, _ := tbl.Column("X")
	v, _, err := x.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11, 12}, v)

	yc, _ := tbl.Column(YearColumn)
	y, _, _ := yc.Float64s()
	assert.Equal(t, []float64{2011, 2011, 2012}, y)
}
