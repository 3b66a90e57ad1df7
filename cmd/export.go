package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"settlementwatch/app"
	"settlementwatch/config"
	"settlementwatch/core/model"
	"settlementwatch/core/pipeline"
	"settlementwatch/elexon"
	"settlementwatch/infra/logger"
	"settlementwatch/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <YYYY-MM-DD>",
	Short: "Export the normalized series for one settlement date",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	date, err := model.ParseSettlementDate(args[0])
	if err != nil {
		return err
	}

	fetcher, err := elexon.NewFetcher(ctx, cfg.Elexon)
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}
	sink, err := app.BuildSink(cfg.Metrics)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(fetcher, cfg.Pipeline.Normalize, sink,
		logger.New("pipeline"), time.Duration(cfg.Elexon.TimeoutSeconds)*time.Second)
	res, err := runner.Run(ctx, date)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "close %s: %v\n", exportOut, cerr)
			}
		}()
		w = f
	}

	switch exportFormat {
	case "csv":
		return export.WriteSeriesCSV(w, &res.Series)
	case "json":
		return export.WriteSeriesJSON(w, &res.Series)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
