package cmd

import (
	"context"
	"fmt"
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
	"settlementwatch/infra/publish"
	"settlementwatch/pkg/export"
)

var dayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "Run the pipeline for one settlement date and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
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
	if res.FetchErr != nil {
		fmt.Fprintf(os.Stderr, "warning: fetch failed, report built from empty day: %v\n", res.FetchErr)
	}
	if err := export.WriteTextReport(os.Stdout, &res.Series, res.Summary, res.Diagnostics); err != nil {
		return err
	}

	if cfg.Publish.Enabled {
		pub, err := publish.NewMQTTPublisher(cfg.Publish)
		if err != nil {
			return fmt.Errorf("summary publisher: %w", err)
		}
		defer pub.Close()
		if err := pub.PublishSummary(res.Summary); err != nil {
			return err
		}
	}
	return nil
}
