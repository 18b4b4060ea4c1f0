package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quantpilot/backtest/pkg/errors"
	"github.com/quantpilot/backtest/pkg/marketdata"
	"github.com/quantpilot/backtest/pkg/marketdata/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func newWriter(format string, output string) (writer.CandleWriter, error) {
	switch format {
	case "csv":
		return writer.NewCSVWriter(output), nil
	case "parquet":
		return writer.NewDuckDBWriter(output), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported output format %q", format)
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	config := marketdata.DownloadConfig{
		Ticker:    cmd.String("ticker"),
		StartDate: cmd.Timestamp("start").UTC().Format(time.RFC3339),
		EndDate:   cmd.Timestamp("end").UTC().Format(time.RFC3339),
		Interval:  cmd.String("interval"),
	}

	provider, err := marketdata.NewProvider(marketdata.ProviderType(cmd.String("provider")))
	if err != nil {
		return err
	}

	w, err := newWriter(cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}
	defer w.Close()

	provider.ConfigWriter(w)

	bar := progressbar.Default(100, "downloading")

	path, err := provider.Download(ctx, config, func(current, total float64, message string) {
		if total <= 0 {
			return
		}

		bar.Describe(message)
		_ = bar.Set(int(current / total * 100))
	})
	if err != nil {
		return err
	}

	_ = bar.Finish()
	fmt.Printf("candles written to %s\n", path)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "download",
		Usage: "Download historical candles into a CSV or Parquet file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "Ticker symbol, e.g. BTCUSDT",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "Start date (inclusive)",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.TimestampFlag{
				Name:     "end",
				Aliases:  []string{"e"},
				Usage:    "End date (exclusive)",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Candle interval, e.g. 1m, 1h, 1d",
				Value:   "1h",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Market data provider",
				Value: string(marketdata.ProviderBinance),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv or parquet",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
				Value:   "candles.csv",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
