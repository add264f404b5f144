package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crocusx/crocus/params"
	"github.com/crocusx/crocus/pkg/engine"
	"github.com/crocusx/crocus/pkg/ingest"
	"github.com/crocusx/crocus/pkg/report"
	"github.com/crocusx/crocus/pkg/util"
)

func main() {
	var (
		inputPath  string
		outputPath string
		envPath    string
		logFile    string
	)

	root := &cobra.Command{
		Use:          "crocus",
		Short:        "Batch order matching: read an order CSV, cross the book per instrument, write the execution report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inputPath, outputPath, envPath, logFile)
		},
	}
	root.Flags().StringVarP(&inputPath, "input", "i", "", "input order CSV")
	root.Flags().StringVarP(&outputPath, "output", "o", "execution_rep.csv", "execution report path")
	root.Flags().StringVar(&envPath, "env", "", ".env file with CROCUS_* overrides")
	root.Flags().StringVar(&logFile, "log-file", "", "also write logs to this file")
	if err := root.MarkFlagRequired("input"); err != nil {
		log.Fatalf("flags: %v", err)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(inputPath, outputPath, envPath, logFile string) error {
	cfg := params.LoadFromEnv(envPath)

	var (
		logger *zap.Logger
		err    error
	)
	if logFile != "" {
		logger, err = util.NewLoggerWithFile(logFile)
	} else {
		logger, err = util.NewLogger()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("run_starting",
		"input", inputPath,
		"output", outputPath,
		"instruments", cfg.Validation.Instruments,
		"lot_size", cfg.Validation.LotSize,
		"qty_ceiling", cfg.Validation.QtyCeiling)

	// Failure to open the input aborts before any output is produced.
	src, err := ingest.Open(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	stamp := util.Timestamper{Clock: util.RealClock{}}
	events, err := engine.New(cfg, stamp, sugar).Run(src)
	if err != nil {
		return err
	}

	if err := report.WriteFile(outputPath, events); err != nil {
		return err
	}
	sugar.Infow("report_written", "path", outputPath, "events", len(events))
	return nil
}
