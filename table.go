package brfss

import (
	"fmt"
	"sort"
)

// YearColumn is the name of the survey-year tag that the loader injects
// into every record.
const YearColumn = "surveyyear"

// A Table is an ordered collection of equal-length Series representing
// one dataset.  Tables built by this package are never mutated after
// construction; transformations produce new tables.
type Table struct {
	names []string
	cols  map[string]*Series
	nrows int

	// Which columns each survey year's source file actually carried,
	// recorded by AppendTables.  In the union schema a column a year
	// never had is indistinguishable from one that is merely all
	// missing, so this is the only place era-level absence survives.
	// Nil when unknown (tables not built by appending).
	yearCols map[int]map[string]bool
}

// NewTable builds a Table from the given columns, which must have equal
// lengths and distinct names.
func NewTable(cols []*Series) (*Table, error) {

	if len(cols) == 0 {
		return nil, fmt.Errorf("table must have at least one column")
	}

	t := &Table{
		cols:  make(map[string]*Series, len(cols)),
		nrows: cols[0].Length(),
	}

	for _, c := range cols {
		if c.Length() != t.nrows {
			return nil, fmt.Errorf("column %s has length %d, want %d", c.Name, c.Length(), t.nrows)
		}
		if _, ok := t.cols[c.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %s", c.Name)
		}
		t.names = append(t.names, c.Name)
		t.cols[c.Name] = c
	}

	return t, nil
}

// NumRows returns the number of records in the table.
func (t *Table) NumRows() int {
	return t.nrows
}

// Names returns the column names in table order.  The returned slice is
// a copy.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Column returns the named column, or false if the table has no column
// with that name.
func (t *Table) Column(name string) (*Series, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// hasColumnForYear reports whether the named column was actually present
// in the given year's source data, as opposed to merely existing in the
// union schema because some other year carried it.  Without per-year
// records the union schema is the best available answer.
func (t *Table) hasColumnForYear(name string, year int) bool {
	if _, ok := t.cols[name]; !ok {
		return false
	}
	if t.yearCols == nil {
		return true
	}
	cols, ok := t.yearCols[year]
	if !ok {
		return true
	}
	return cols[name]
}

// Years returns the distinct surveyyear values present in the table, in
// ascending order.
func (t *Table) Years() ([]int, error) {

	yc, ok := t.cols[YearColumn]
	if !ok {
		return nil, fmt.Errorf("table has no %s column", YearColumn)
	}
	yv, _, err := yc.Float64s()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	for _, v := range yv {
		seen[int(v)] = true
	}

	var years []int
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	return years, nil
}

// AppendTables concatenates the given tables row-wise, in order.  The
// result's schema is the union of the input schemas: column order follows
// first appearance, and a table lacking a column contributes explicit
// missing values for it.  Each input's rows keep their relative order.
func AppendTables(tables ...*Table) (*Table, error) {

	if len(tables) == 0 {
		return nil, fmt.Errorf("nothing to append")
	}

	var names []string
	seen := make(map[string]bool)
	lengths := make([]int, len(tables))

	for i, t := range tables {
		lengths[i] = t.nrows
		for _, name := range t.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	cols := make([]*Series, 0, len(names))
	for _, name := range names {
		segments := make([]*Series, len(tables))
		for i, t := range tables {
			segments[i] = t.cols[name] // nil when the table lacks the column
		}
		c, err := concatSeries(name, segments, lengths)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}

	out, err := NewTable(cols)
	if err != nil {
		return nil, err
	}
	out.yearCols = yearSchemas(tables)

	return out, nil
}

// yearSchemas records which columns each year's input carried, merging
// any per-year records the inputs already hold.  Returns nil when an
// input's years cannot be determined.
func yearSchemas(tables []*Table) map[int]map[string]bool {

	res := make(map[int]map[string]bool)

	for _, t := range tables {

		if t.yearCols != nil {
			for y, cols := range t.yearCols {
				if res[y] == nil {
					res[y] = make(map[string]bool)
				}
				for name := range cols {
					res[y][name] = true
				}
			}
			continue
		}

		years, err := t.Years()
		if err != nil {
			return nil
		}
		for _, y := range years {
			if res[y] == nil {
				res[y] = make(map[string]bool)
			}
			for _, name := range t.names {
				res[y][name] = true
			}
		}
	}

	return res
}
