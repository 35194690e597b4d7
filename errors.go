package brfss

import "fmt"

// MissingFileError reports that the source file for a requested survey
// year does not exist.  The loader raises it before reading any record,
// since harmonization depends on year completeness.
type MissingFileError struct {
	Year int
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("no source file for survey year %d: %s", e.Year, e.Path)
}

// RuleCoverageError reports that the rules for a harmonized variable do
// not exactly partition the supported year span: some year is either
// covered by no rule (gap) or by more than one (overlap).  It is raised
// by RuleSet.Validate before any record is processed.
type RuleCoverageError struct {
	Target  string
	Year    int
	Overlap bool
}

func (e *RuleCoverageError) Error() string {
	if e.Overlap {
		return fmt.Sprintf("rules for %s overlap at year %d", e.Target, e.Year)
	}
	return fmt.Sprintf("rules for %s leave year %d uncovered", e.Target, e.Year)
}

// UnresolvedSourceVariableError reports that a rule names a source
// variable that is absent from the data for a year in the rule's range.
// This usually indicates a rule-table bug rather than genuinely absent
// data, so it is fatal rather than treated as missing.
type UnresolvedSourceVariableError struct {
	Target string
	Source string
	Year   int
}

func (e *UnresolvedSourceVariableError) Error() string {
	return fmt.Sprintf("harmonizing %s: source variable %s not present for survey year %d",
		e.Target, e.Source, e.Year)
}

// UnknownCodeError reports, in strict mode, a source value that is
// neither a documented code, nor a sentinel, nor missing.
type UnknownCodeError struct {
	Target string
	Year   int
	Value  float64
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("harmonizing %s: undocumented code %v in survey year %d",
		e.Target, e.Value, e.Year)
}
