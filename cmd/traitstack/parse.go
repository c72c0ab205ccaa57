package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldtraits/traitstack/batch"
	"github.com/fieldtraits/traitstack/config"
)

var (
	parseField   string
	parseFormat  string
	parseOutPath string
	parseWorkers int
	parseInputFmt string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse specimen records and emit extracted traits",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseField, "field", "text", "Record field holding the free-form text to parse")
	parseCmd.Flags().StringVar(&parseFormat, "format", "csv", "Output format: csv or json")
	parseCmd.Flags().StringVar(&parseInputFmt, "input-format", "csv", "Input format: csv or jsonl")
	parseCmd.Flags().StringVar(&parseOutPath, "out", "", "Output file path (default: stdout)")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 0, "Worker pool size (default: runtime.NumCPU())")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	workers := parseWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("parse: opening %s: %w", args[0], err)
	}
	defer f.Close()

	var records []batch.Record
	switch strings.ToLower(parseInputFmt) {
	case "csv":
		records, err = batch.ReadCSV(f)
	case "jsonl", "json":
		records, err = batch.ReadJSONLines(f)
	default:
		return fmt.Errorf("parse: unknown input format %q", parseInputFmt)
	}
	if err != nil {
		return err
	}

	p, err := buildParser(cfg)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("starting batch parse",
			zap.Int("records", len(records)), zap.Int("workers", workers), zap.String("field", parseField))
	}

	results := batch.Run(p, records, parseField, workers)

	traitCount := 0
	for _, r := range results {
		if len(r.Traits) == 0 && logger != nil {
			logger.Debug("no traits extracted", zap.Int("record", r.Index))
		}
		traitCount += len(r.Traits)
	}
	if logger != nil {
		logger.Info("batch parse complete", zap.Int("traits", traitCount))
	}

	out := os.Stdout
	if parseOutPath != "" {
		of, err := os.Create(parseOutPath)
		if err != nil {
			return fmt.Errorf("parse: creating %s: %w", parseOutPath, err)
		}
		defer of.Close()
		out = of
	}

	switch strings.ToLower(parseFormat) {
	case "csv":
		return batch.WriteCSV(out, results)
	case "json", "jsonl":
		return batch.WriteJSONLines(out, results)
	default:
		return fmt.Errorf("parse: unknown output format %q", parseFormat)
	}
}
