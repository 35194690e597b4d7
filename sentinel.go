package brfss

// BRFSS codes nonresponse with width-matched magic numbers: a one-digit
// field uses 7 for "don't know/not sure" and 9 for "refused", a
// two-digit field uses 77/99, a three-digit field 777/999.  Blank is
// always missing.  The table below is the single source of these codes;
// rules consult it by field width rather than hard-coding values, so
// variables sharing a convention cannot silently diverge.
var sentinelsByWidth = map[int][]float64{
	1: {7, 9},
	2: {77, 99},
	3: {777, 999},
}

// isSentinel reports whether v is a nonresponse code for a coded field
// of the given width.  Width 0 means the field has no sentinel
// convention (continuous measures).
func isSentinel(v float64, width int) bool {
	for _, s := range sentinelsByWidth[width] {
		if v == s {
			return true
		}
	}
	return false
}

// inferWidth derives a categorical field's width from its largest
// documented code.
func inferWidth(codes map[int]float64) int {
	max := 0
	for c := range codes {
		if c > max {
			max = c
		}
	}
	switch {
	case max <= 0:
		return 0
	case max < 10:
		return 1
	case max < 100:
		return 2
	default:
		return 3
	}
}
