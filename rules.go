package brfss

import "fmt"

// A YearRange is an inclusive span of survey years over which one
// rule's source variable name and coding apply.
type YearRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// A Rule describes how to produce one harmonized variable from one
// source variable over one year range.  For every harmonized variable
// the rules' year ranges must exactly partition the supported span;
// RuleSet.Validate enforces this before any record is processed.
type Rule struct {

	// Name of the harmonized output variable.
	Target string

	// Years this rule applies to.
	Years YearRange

	// Name of the source variable in this era's files.
	Source string

	// Coded field width, selecting the sentinel set (1 -> 7/9,
	// 2 -> 77/99, 3 -> 777/999).  Zero means infer from the largest
	// code in Map, or no sentinels when the rule is a derivation over
	// a continuous source.
	Width int

	// Raw source code to harmonized code.  A resolved value absent
	// from a non-empty Map is an undocumented code (see Harmonizer).
	Map map[int]float64

	// Source codes beyond the width sentinels that also mean
	// nonresponse for this variable (e.g. 14 in _AGEG5YR).
	Missing []int

	// Name of a registered derivation applied to the resolved value
	// instead of Map.  Derivations are pure functions and never see
	// sentinel or missing values.
	Derive string
}

// width resolves the rule's effective sentinel field width.
func (r *Rule) width() int {
	if r.Width != 0 {
		return r.Width
	}
	return inferWidth(r.Map)
}

// A DeriveFunc buckets or otherwise transforms one resolved, non-missing
// source value.  Returning false rejects a value outside the
// derivation's documented domain; the harmonizer treats such values
// exactly like undocumented codes, recoding to missing and counting
// them, or failing outright in strict mode.
type DeriveFunc func(v float64) (float64, bool)

// derivations names the derivation functions rules may reference.
var derivations = map[string]DeriveFunc{

	// CDC body mass index categories from _BMI5 (BMI times 100):
	// underweight, normal, overweight, obese.
	"bmi4cat": func(v float64) (float64, bool) {
		switch {
		case v <= 0:
			return 0, false
		case v < 1850:
			return 1, true
		case v < 2500:
			return 2, true
		case v < 3000:
			return 3, true
		default:
			return 4, true
		}
	},
}

// RegisterDerivation makes a derivation function available to rules
// under the given name.  Registering a duplicate name is an error.
func RegisterDerivation(name string, f DeriveFunc) error {
	if _, ok := derivations[name]; ok {
		return fmt.Errorf("derivation %s already registered", name)
	}
	derivations[name] = f
	return nil
}

// A RuleSet is the full harmonization rule table plus the survey-design
// variables passed through unrecoded.
type RuleSet struct {
	Rules []Rule

	// Survey-design variables (weight, stratum, PSU) copied into the
	// output unchanged.  Their presence is validated; their values are
	// never interpreted.
	Passthrough []string
}

// Targets returns the distinct harmonized variable names, in first
// appearance order.
func (rs *RuleSet) Targets() []string {
	var targets []string
	seen := make(map[string]bool)
	for _, r := range rs.Rules {
		if !seen[r.Target] {
			seen[r.Target] = true
			targets = append(targets, r.Target)
		}
	}
	return targets
}

// rulesFor returns the rules for one target.
func (rs *RuleSet) rulesFor(target string) []Rule {
	var out []Rule
	for _, r := range rs.Rules {
		if r.Target == target {
			out = append(out, r)
		}
	}
	return out
}

// ruleFor returns the rule governing target in the given year.  Validate
// guarantees exactly one exists within the validated span.
func (rs *RuleSet) ruleFor(target string, year int) (*Rule, bool) {
	for i := range rs.Rules {
		if rs.Rules[i].Target == target && rs.Rules[i].Years.Contains(year) {
			return &rs.Rules[i], true
		}
	}
	return nil, false
}

// Validate checks the whole rule table before any record is processed.
// For every target, the rules' year ranges must cover each year of
// [startYear, endYear] exactly once; a gap or overlap yields a
// *RuleCoverageError naming the target and an offending year.  Rules
// referencing an unregistered derivation are also rejected here.
func (rs *RuleSet) Validate(startYear, endYear int) error {

	if endYear < startYear {
		return fmt.Errorf("end year %d precedes start year %d", endYear, startYear)
	}
	if len(rs.Rules) == 0 {
		return fmt.Errorf("rule set is empty")
	}

	for _, r := range rs.Rules {
		if r.Target == "" || r.Source == "" {
			return fmt.Errorf("rule %q/%q: target and source are required", r.Target, r.Source)
		}
		if r.Years.Max < r.Years.Min {
			return fmt.Errorf("rule %s %s: inverted year range", r.Target, r.Years)
		}
		if r.Derive != "" {
			if _, ok := derivations[r.Derive]; !ok {
				return fmt.Errorf("rule %s %s: unknown derivation %q", r.Target, r.Years, r.Derive)
			}
		}
		if r.Derive == "" && len(r.Map) == 0 {
			return fmt.Errorf("rule %s %s: needs a code map or a derivation", r.Target, r.Years)
		}
	}

	for _, target := range rs.Targets() {

		rules := rs.rulesFor(target)

		for year := startYear; year <= endYear; year++ {
			n := 0
			for _, r := range rules {
				if r.Years.Contains(year) {
					n++
				}
			}
			switch {
			case n == 0:
				return &RuleCoverageError{Target: target, Year: year}
			case n > 1:
				return &RuleCoverageError{Target: target, Year: year, Overlap: true}
			}
		}
	}

	return nil
}
