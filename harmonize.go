package brfss

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// A Harmonizer applies a rule set to an appended table, producing one
// harmonized record per source record.  Harmonization is a pure function
// of the input table and the rule set: running it twice on the same
// table yields identical output, and the input is never modified.
type Harmonizer struct {
	rules  *RuleSet
	strict bool
	logger *zap.Logger
}

// HarmonizerOption configures a Harmonizer.
type HarmonizerOption func(*Harmonizer)

// WithStrict makes undocumented source codes fatal (*UnknownCodeError)
// instead of recoded-to-missing-and-counted.
func WithStrict() HarmonizerOption {
	return func(h *Harmonizer) { h.strict = true }
}

// WithLogger sets the logger used to report undocumented-code counts.
func WithLogger(lg *zap.Logger) HarmonizerOption {
	return func(h *Harmonizer) { h.logger = lg }
}

// NewHarmonizer returns a Harmonizer for the given rule set.
func NewHarmonizer(rules *RuleSet, opts ...HarmonizerOption) *Harmonizer {
	h := &Harmonizer{
		rules:  rules,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// resolve maps each survey year present in the table to the governing
// rule for one target, verifying that every such rule's source variable
// was actually carried by that year's data.  Checking per year rather
// than against the union schema catches a rule whose source exists only
// in some other era, which would otherwise harmonize to all missing.
func (h *Harmonizer) resolve(t *Table, target string, years []int) (map[int]*Rule, error) {

	byYear := make(map[int]*Rule, len(years))
	for _, year := range years {
		r, ok := h.rules.ruleFor(target, year)
		if !ok {
			// Validate has already covered the table's span, so
			// this cannot happen for a validated set.
			return nil, &RuleCoverageError{Target: target, Year: year}
		}
		if !t.hasColumnForYear(r.Source, year) {
			return nil, &UnresolvedSourceVariableError{Target: target, Source: r.Source, Year: year}
		}
		byYear[year] = r
	}

	return byYear, nil
}

// Harmonize produces the harmonized table: the surveyyear tag, one
// column per harmonized variable, and the survey-design passthrough
// columns, in that order.  The whole rule table is validated against
// the table's year span, and every source variable resolved, before any
// record is processed.
func (h *Harmonizer) Harmonize(t *Table) (*Table, error) {

	years, err := t.Years()
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("table has no records")
	}

	if err := h.rules.Validate(years[0], years[len(years)-1]); err != nil {
		return nil, err
	}

	// Resolve every target's source columns up front so configuration
	// defects surface before any row work.
	resolved := make(map[string]map[int]*Rule)
	for _, target := range h.rules.Targets() {
		byYear, err := h.resolve(t, target, years)
		if err != nil {
			return nil, err
		}
		resolved[target] = byYear
	}

	for _, name := range h.rules.Passthrough {
		if _, ok := t.Column(name); !ok {
			return nil, &UnresolvedSourceVariableError{Target: name, Source: name, Year: years[0]}
		}
	}

	yearCol, _ := t.Column(YearColumn)
	yearVals, _, err := yearCol.Float64s()
	if err != nil {
		return nil, err
	}
	nrow := t.NumRows()

	cols := []*Series{yearCol}

	for _, target := range h.rules.Targets() {

		// Materialize every source column this target reads, failing
		// on non-numeric sources before any row work.
		srcVals := make(map[string][]float64)
		srcSer := make(map[string]*Series)
		for _, rule := range resolved[target] {
			src, _ := t.Column(rule.Source)
			vals, _, err := src.Float64s()
			if err != nil {
				return nil, fmt.Errorf("harmonizing %s: source %s is not numeric", target, rule.Source)
			}
			srcVals[rule.Source] = vals
			srcSer[rule.Source] = src
		}

		out := make([]float64, nrow)
		miss := make([]bool, nrow)
		unknown := 0

		for i := 0; i < nrow; i++ {

			year := int(yearVals[i])
			rule := resolved[target][year]

			if srcSer[rule.Source].IsMissing(i) {
				miss[i] = true
				continue
			}

			v := srcVals[rule.Source][i]

			// Sentinel recoding happens before any mapping or
			// derivation, so derivations never see nonresponse
			// codes.
			if isSentinel(v, rule.width()) || h.ruleMissing(rule, v) {
				miss[i] = true
				continue
			}

			hv, ok := applyRule(rule, v)
			if !ok {
				if h.strict {
					return nil, &UnknownCodeError{Target: target, Year: year, Value: v}
				}
				miss[i] = true
				unknown++
				continue
			}
			out[i] = hv
		}

		if unknown > 0 {
			h.logger.Warn("undocumented source codes recoded to missing",
				zap.String("target", target),
				zap.Int("count", unknown))
		}

		ser, err := NewSeries(target, out, miss)
		if err != nil {
			return nil, err
		}
		cols = append(cols, ser)
	}

	for _, name := range h.rules.Passthrough {
		// Copied unrecoded; downstream weighted estimation needs the
		// original values.
		c, _ := t.Column(name)
		cols = append(cols, c)
	}

	return NewTable(cols)
}

// ruleMissing reports whether v is one of the rule's variable-specific
// nonresponse codes.
func (h *Harmonizer) ruleMissing(rule *Rule, v float64) bool {
	for _, m := range rule.Missing {
		if v == float64(m) {
			return true
		}
	}
	return false
}

// applyRule maps one resolved, non-missing, non-sentinel source value to
// its harmonized value.  ok is false for undocumented codes.
func applyRule(rule *Rule, v float64) (float64, bool) {

	if rule.Derive != "" {
		return derivations[rule.Derive](v)
	}

	// Coded fields are integer-valued; a fractional value cannot be a
	// documented code.
	if v != math.Trunc(v) {
		return 0, false
	}
	hv, ok := rule.Map[int(v)]
	return hv, ok
}
