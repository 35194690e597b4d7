package brfss

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleConfig is the YAML shape of one rule.  years is the inclusive
// [min, max] pair.
type ruleConfig struct {
	Target  string          `yaml:"target"`
	Years   []int           `yaml:"years"`
	Source  string          `yaml:"source"`
	Width   int             `yaml:"width"`
	Map     map[int]float64 `yaml:"map"`
	Missing []int           `yaml:"missing"`
	Derive  string          `yaml:"derive"`
}

type rulesConfig struct {
	Rules       []ruleConfig `yaml:"rules"`
	Passthrough []string     `yaml:"passthrough"`
}

// ParseRules decodes a YAML rule table.  The result still has to pass
// RuleSet.Validate for the intended year span before use.
func ParseRules(data []byte) (*RuleSet, error) {

	var cfg rulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	rs := &RuleSet{Passthrough: cfg.Passthrough}
	for _, rc := range cfg.Rules {
		if len(rc.Years) != 2 {
			return nil, fmt.Errorf("rule %s: years must be [min, max], got %v", rc.Target, rc.Years)
		}
		rs.Rules = append(rs.Rules, Rule{
			Target:  rc.Target,
			Years:   YearRange{Min: rc.Years[0], Max: rc.Years[1]},
			Source:  rc.Source,
			Width:   rc.Width,
			Map:     rc.Map,
			Missing: rc.Missing,
			Derive:  rc.Derive,
		})
	}

	return rs, nil
}

// LoadRules reads a YAML rule table from a file.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}
