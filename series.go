package brfss

import (
	"fmt"
	"math"
)

// A Series is a fixed-type one-dimensional sequence of data values, with
// a mask for missing values.  Survey data is numeric-coded, so a Series
// holds either float64 or string data; nothing else appears in BRFSS
// source files once they are in CSV form.
type Series struct {

	// A name describing what is in this series.
	Name string

	// The length of the series.
	length int

	// The data, either []float64 or []string.
	data interface{}

	// Indicators that data values are missing.  If nil, there are
	// no missing values.
	missing []bool
}

// NewSeries returns a new Series value with the given name and data
// contents.  The data slice parameter is not copied.
func NewSeries(name string, data interface{}, missing []bool) (*Series, error) {

	var length int
	switch v := data.(type) {
	case []float64:
		length = len(v)
	case []string:
		length = len(v)
	default:
		return nil, fmt.Errorf("unsupported series type %T", data)
	}

	if missing != nil && len(missing) != length {
		return nil, fmt.Errorf("series %s: mask length %d does not match data length %d",
			name, len(missing), length)
	}

	ser := Series{
		Name:    name,
		length:  length,
		data:    data,
		missing: missing,
	}

	return &ser, nil
}

// NewFloatSeries is NewSeries for float64 data, without the error return.
func NewFloatSeries(name string, data []float64, missing []bool) *Series {
	ser, err := NewSeries(name, data, missing)
	if err != nil {
		panic(err)
	}
	return ser
}

// NewConstSeries returns a Series of the given length in which every
// value equals c.  The loader uses this to inject the surveyyear tag.
func NewConstSeries(name string, c float64, length int) *Series {
	data := make([]float64, length)
	for i := range data {
		data[i] = c
	}
	ser, _ := NewSeries(name, data, nil)
	return ser
}

// Length returns the number of elements in the Series.
func (ser *Series) Length() int {
	return ser.length
}

// Data returns the data component of the Series.
func (ser *Series) Data() interface{} {
	return ser.data
}

// Missing returns the array of missing value indicators.
func (ser *Series) Missing() []bool {
	return ser.missing
}

// IsMissing returns true if position i of the Series holds a missing value.
func (ser *Series) IsMissing(i int) bool {
	return ser.missing != nil && ser.missing[i]
}

// IsNumeric returns true if the Series holds float64 data.
func (ser *Series) IsNumeric() bool {
	_, ok := ser.data.([]float64)
	return ok
}

// Float64s returns the series data as a float64 slice together with the
// missing value indicators.
func (ser *Series) Float64s() ([]float64, []bool, error) {
	v, ok := ser.data.([]float64)
	if !ok {
		return nil, nil, fmt.Errorf("series %s: can't convert %T to []float64", ser.Name, ser.data)
	}
	return v, ser.missing, nil
}

// Strings returns the series data as a string slice together with the
// missing value indicators.
func (ser *Series) Strings() ([]string, []bool, error) {
	v, ok := ser.data.([]string)
	if !ok {
		return nil, nil, fmt.Errorf("series %s: can't convert %T to []string", ser.Name, ser.data)
	}
	return v, ser.missing, nil
}

// CountMissing returns the number of missing values in the Series.
func (ser *Series) CountMissing() int {
	m := 0
	for i := 0; i < ser.length; i++ {
		if ser.IsMissing(i) {
			m++
		}
	}
	return m
}

// Rename returns a Series sharing this Series' data under a new name.
func (ser *Series) Rename(name string) *Series {
	s := *ser
	s.Name = name
	return &s
}

// concatSeries stacks the given segments into one Series under the given
// name.  A nil segment of length n contributes n missing values, which is
// how union-schema appending fills a column for a year that lacks it.
// All non-nil segments must have the same underlying type.
func concatSeries(name string, segments []*Series, lengths []int) (*Series, error) {

	total := 0
	numeric := true
	for i, seg := range segments {
		total += lengths[i]
		if seg != nil {
			if seg.length != lengths[i] {
				return nil, fmt.Errorf("series %s: segment %d has length %d, want %d",
					name, i, seg.length, lengths[i])
			}
			numeric = seg.IsNumeric()
		}
	}

	missing := make([]bool, total)

	if numeric {
		data := make([]float64, total)
		pos := 0
		for i, seg := range segments {
			if seg == nil {
				for j := 0; j < lengths[i]; j++ {
					missing[pos+j] = true
				}
			} else {
				v, _, err := seg.Float64s()
				if err != nil {
					return nil, fmt.Errorf("series %s: mixed segment types", name)
				}
				copy(data[pos:], v)
				for j := 0; j < lengths[i]; j++ {
					missing[pos+j] = seg.IsMissing(j)
				}
			}
			pos += lengths[i]
		}
		return NewSeries(name, data, missing)
	}

	data := make([]string, total)
	pos := 0
	for i, seg := range segments {
		if seg == nil {
			for j := 0; j < lengths[i]; j++ {
				missing[pos+j] = true
			}
		} else {
			v, _, err := seg.Strings()
			if err != nil {
				return nil, fmt.Errorf("series %s: mixed segment types", name)
			}
			copy(data[pos:], v)
			for j := 0; j < lengths[i]; j++ {
				missing[pos+j] = seg.IsMissing(j)
			}
		}
		pos += lengths[i]
	}
	return NewSeries(name, data, missing)
}

// AllClose returns true, 0 if the Series is within tol of the other
// series.  If the Series have different lengths, AllClose returns
// false, -1.  If the Series have different types, AllClose returns
// false, -2.  Otherwise, on a mismatch AllClose returns false, j, where
// j is the first position where the two series differ.
func (ser *Series) AllClose(other *Series, tol float64) (bool, int) {

	if ser.length != other.length {
		return false, -1
	}

	// Missing positions must agree exactly; values are compared only
	// where both are present.
	cmiss := func(j int) int {
		f1 := !ser.IsMissing(j)
		f2 := !other.IsMissing(j)
		if f1 != f2 {
			return 0 // inconsistent
		} else if f1 {
			return 1 // both non-missing
		}
		return 2 // both missing
	}

	switch u := ser.data.(type) {
	case []float64:
		v, ok := other.data.([]float64)
		if !ok {
			return false, -2
		}
		for j := 0; j < ser.length; j++ {
			c := cmiss(j)
			if c == 0 {
				return false, j
			}
			if c == 1 && math.Abs(u[j]-v[j]) > tol {
				return false, j
			}
		}
	case []string:
		v, ok := other.data.([]string)
		if !ok {
			return false, -2
		}
		for j := 0; j < ser.length; j++ {
			c := cmiss(j)
			if c == 0 {
				return false, j
			}
			if c == 1 && u[j] != v[j] {
				return false, j
			}
		}
	}

	return true, 0
}

// AllEqual is equivalent to AllClose with tol=0.
func (ser *Series) AllEqual(other *Series) (bool, int) {
	return ser.AllClose(other, 0.0)
}
