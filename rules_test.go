package brfss

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetValidate(t *testing.T) {

	t.Run("exact partition passes", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2015}, Source: "A", Map: identityMap(1, 3)},
			{Target: "x", Years: YearRange{2016, 2020}, Source: "B", Map: identityMap(1, 3)},
		}}
		require.NoError(t, rs.Validate(2011, 2020))
	})

	t.Run("gap names target and uncovered year", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2014}, Source: "A", Map: identityMap(1, 3)},
			{Target: "x", Years: YearRange{2016, 2020}, Source: "B", Map: identityMap(1, 3)},
		}}
		err := rs.Validate(2011, 2020)
		var cov *RuleCoverageError
		require.True(t, errors.As(err, &cov))
		assert.Equal(t, "x", cov.Target)
		assert.Equal(t, 2015, cov.Year)
		assert.False(t, cov.Overlap)
	})

	t.Run("overlap names target and year", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2016}, Source: "A", Map: identityMap(1, 3)},
			{Target: "x", Years: YearRange{2016, 2020}, Source: "B", Map: identityMap(1, 3)},
		}}
		err := rs.Validate(2011, 2020)
		var cov *RuleCoverageError
		require.True(t, errors.As(err, &cov))
		assert.Equal(t, "x", cov.Target)
		assert.Equal(t, 2016, cov.Year)
		assert.True(t, cov.Overlap)
	})

	t.Run("rule outside span still must not overlap inside it", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2020}, Source: "A", Map: identityMap(1, 3)},
		}}
		require.NoError(t, rs.Validate(2013, 2018))
	})

	t.Run("unknown derivation rejected", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2020}, Source: "A", Derive: "nope"},
		}}
		require.Error(t, rs.Validate(2011, 2020))
	})

	t.Run("rule with neither map nor derivation rejected", func(t *testing.T) {
		rs := &RuleSet{Rules: []Rule{
			{Target: "x", Years: YearRange{2011, 2020}, Source: "A"},
		}}
		require.Error(t, rs.Validate(2011, 2020))
	})

	t.Run("empty rule set rejected", func(t *testing.T) {
		rs := &RuleSet{}
		require.Error(t, rs.Validate(2011, 2020))
	})
}

func TestDefaultRulesCoverFullSpan(t *testing.T) {

	rs := DefaultRules()
	require.NoError(t, rs.Validate(2011, 2024))

	// Every target has exactly one governing rule for every supported
	// year.
	for _, target := range rs.Targets() {
		for year := 2011; year <= 2024; year++ {
			n := 0
			for _, r := range rs.rulesFor(target) {
				if r.Years.Contains(year) {
					n++
				}
			}
			assert.Equal(t, 1, n, "%s in %d", target, year)
		}
	}

	assert.Equal(t, []string{WeightVar, StratumVar, PSUVar}, rs.Passthrough)
}

func TestParseRules(t *testing.T) {

	doc := `
rules:
  - target: income_cat
    years: [2011, 2021]
    source: INCOME2
    width: 2
    map: {1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 7, 8: 8}
  - target: income_cat
    years: [2022, 2024]
    source: INCOME3
    width: 2
    map: {1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 7, 8: 8, 9: 8, 10: 8, 11: 8}
  - target: bmi_cat
    years: [2011, 2024]
    source: _BMI5
    derive: bmi4cat
passthrough: [_LLCPWT, _STSTR, _PSU]
`

	rs, err := ParseRules([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, rs.Validate(2011, 2024))

	assert.Equal(t, []string{"income_cat", "bmi_cat"}, rs.Targets())
	assert.Equal(t, []string{"_LLCPWT", "_STSTR", "_PSU"}, rs.Passthrough)

	r, ok := rs.ruleFor("income_cat", 2022)
	require.True(t, ok)
	assert.Equal(t, "INCOME3", r.Source)
	assert.Equal(t, float64(8), r.Map[11])

	t.Run("malformed year pair rejected", func(t *testing.T) {
		_, err := ParseRules([]byte("rules:\n  - target: x\n    years: [2011]\n    source: A\n"))
		require.Error(t, err)
	})

	t.Run("loads from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		rs, err := LoadRules(path)
		require.NoError(t, err)
		require.NoError(t, rs.Validate(2011, 2024))

		_, err = LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
