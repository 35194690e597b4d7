// brfssharm stacks annual BRFSS survey files and harmonizes them into
// analysis-ready tables.
//
// usage:
//
//	brfssharm run --data-dir data --start-year 2011 --end-year 2024 \
//	    --appended-out appended.parquet --harmonized-out harmonized.parquet
//	brfssharm validate --rules rules.yaml --start-year 2011 --end-year 2024
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

func main() {

	var err error
	logger, err = buildLogger()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "brfssharm",
		Short:         "Append and harmonize annual BRFSS survey data files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), validateCmd())

	if err := root.Execute(); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
