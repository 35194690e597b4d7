package brfss

// Survey-design variables required by downstream weighted estimation.
// They pass through harmonization unrecoded.
const (
	WeightVar  = "_LLCPWT"
	StratumVar = "_STSTR"
	PSUVar     = "_PSU"
)

// identityMap returns the code map {lo: lo, ..., hi: hi}.
func identityMap(lo, hi int) map[int]float64 {
	m := make(map[int]float64, hi-lo+1)
	for c := lo; c <= hi; c++ {
		m[c] = float64(c)
	}
	return m
}

// DefaultRules returns the built-in rule table covering the 2011-2024
// span of the combined landline/cell BRFSS releases.  Code maps follow
// the annual BRFSS codebooks.
func DefaultRules() *RuleSet {

	// INCOME3 (2022+) added categories 8-11, splitting the old top
	// bracket; they collapse onto harmonized category 8 so income_cat
	// stays on the pre-2022 1-8 scheme.
	income3 := identityMap(1, 7)
	for c := 8; c <= 11; c++ {
		income3[c] = 8
	}

	// Respondent sex: 1=male, 2=female in every era.  female is the
	// binary indicator, 1=female.
	sexMap := map[int]float64{1: 0, 2: 1}

	// _SMOKER3 calculated smoking status: 1/2 current (daily/some
	// days), 3 former, 4 never.
	smokerMap := map[int]float64{1: 1, 2: 1, 3: 2, 4: 3}

	// _AGEG5YR thirteen five-year groups collapse to six analysis
	// groups; 14 is the codebook's own nonresponse code.
	ageMap := map[int]float64{
		1: 1,
		2: 2, 3: 2,
		4: 3, 5: 3,
		6: 4, 7: 4,
		8: 5, 9: 5,
		10: 6, 11: 6, 12: 6, 13: 6,
	}

	return &RuleSet{
		Rules: []Rule{
			{
				Target: "income_cat",
				Years:  YearRange{2011, 2021},
				Source: "INCOME2",
				Width:  2,
				Map:    identityMap(1, 8),
			},
			{
				Target: "income_cat",
				Years:  YearRange{2022, 2024},
				Source: "INCOME3",
				Width:  2,
				Map:    income3,
			},
			{
				Target: "female",
				Years:  YearRange{2011, 2017},
				Source: "SEX",
				Width:  1,
				Map:    sexMap,
			},
			{
				Target: "female",
				Years:  YearRange{2018, 2018},
				Source: "SEX1",
				Width:  1,
				Map:    sexMap,
			},
			{
				Target: "female",
				Years:  YearRange{2019, 2024},
				Source: "_SEX",
				Width:  1,
				Map:    sexMap,
			},
			{
				Target: "smoker",
				Years:  YearRange{2011, 2024},
				Source: "_SMOKER3",
				Width:  1,
				Map:    smokerMap,
			},
			{
				Target: "genhlth_cat",
				Years:  YearRange{2011, 2024},
				Source: "GENHLTH",
				Width:  1,
				Map:    identityMap(1, 5),
			},
			{
				Target:  "age_group",
				Years:   YearRange{2011, 2024},
				Source:  "_AGEG5YR",
				Width:   2,
				Map:     ageMap,
				Missing: []int{14},
			},
			{
				Target: "bmi_cat",
				Years:  YearRange{2011, 2024},
				Source: "_BMI5",
				Derive: "bmi4cat",
			},
		},
		Passthrough: []string{WeightVar, StratumVar, PSUVar},
	}
}
