package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	brfss "github.com/austindenteh/eco-322-public-data-sub001"
)

// runCmd builds the full pipeline command: load the requested years,
// validate and apply the rule table, and write the appended and
// harmonized artifacts.
func runCmd() *cobra.Command {

	var (
		dataDir       string
		startYear     int
		endYear       int
		rulesPath     string
		appendedOut   string
		harmonizedOut string
		strict        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load, append, and harmonize the requested survey years",
		RunE: func(cmd *cobra.Command, args []string) error {

			rules, err := loadRuleSet(rulesPath)
			if err != nil {
				return err
			}
			if err := rules.Validate(startYear, endYear); err != nil {
				return err
			}

			logger.Info("loading survey years",
				zap.String("dir", dataDir),
				zap.Int("start", startYear),
				zap.Int("end", endYear))

			appended, err := brfss.NewLoader(dataDir).Load(startYear, endYear)
			if err != nil {
				return err
			}
			logger.Info("appended table built",
				zap.Int("rows", appended.NumRows()),
				zap.Int("columns", len(appended.Names())))

			opts := []brfss.HarmonizerOption{brfss.WithLogger(logger)}
			if strict {
				opts = append(opts, brfss.WithStrict())
			}
			harmonized, err := brfss.NewHarmonizer(rules, opts...).Harmonize(appended)
			if err != nil {
				return err
			}
			logger.Info("harmonized table built",
				zap.Int("rows", harmonized.NumRows()),
				zap.Int("columns", len(harmonized.Names())))

			if appendedOut != "" {
				if err := writeTable(appendedOut, appended); err != nil {
					return err
				}
				logger.Info("wrote appended table", zap.String("path", appendedOut))
			}
			if harmonizedOut != "" {
				if err := writeTable(harmonizedOut, harmonized); err != nil {
					return err
				}
				logger.Info("wrote harmonized table", zap.String("path", harmonizedOut))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory holding the per-year source files")
	cmd.Flags().IntVar(&startYear, "start-year", 2011, "first survey year to load")
	cmd.Flags().IntVar(&endYear, "end-year", 2024, "last survey year to load")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rule table (default: built-in rules)")
	cmd.Flags().StringVar(&appendedOut, "appended-out", "", "write the appended table here (.csv or .parquet)")
	cmd.Flags().StringVar(&harmonizedOut, "harmonized-out", "harmonized.csv", "write the harmonized table here (.csv or .parquet)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on undocumented source codes instead of recoding to missing")

	return cmd
}

// validateCmd checks a rule table's year coverage without touching any
// data file.
func validateCmd() *cobra.Command {

	var (
		rulesPath string
		startYear int
		endYear   int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a rule table's year coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRuleSet(rulesPath)
			if err != nil {
				return err
			}
			if err := rules.Validate(startYear, endYear); err != nil {
				return err
			}
			logger.Info("rule table is valid",
				zap.Int("start", startYear),
				zap.Int("end", endYear),
				zap.Strings("targets", rules.Targets()))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rule table (default: built-in rules)")
	cmd.Flags().IntVar(&startYear, "start-year", 2011, "first year the rules must cover")
	cmd.Flags().IntVar(&endYear, "end-year", 2024, "last year the rules must cover")

	return cmd
}

func loadRuleSet(path string) (*brfss.RuleSet, error) {
	if path == "" {
		return brfss.DefaultRules(), nil
	}
	return brfss.LoadRules(path)
}

// writeTable picks the output format from the file extension.
func writeTable(path string, t *brfss.Table) error {

	switch {
	case strings.HasSuffix(path, ".parquet"):
		return brfss.WriteParquet(path, t)
	case strings.HasSuffix(path, ".csv"):
		fid, err := os.Create(path)
		if err != nil {
			return err
		}
		defer fid.Close()
		return brfss.WriteCSV(fid, t)
	default:
		return fmt.Errorf("%s: output must end in .csv or .parquet", path)
	}
}
