package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/quantpilot/backtest/internal/backtest/engine"
	"github.com/quantpilot/backtest/internal/datasource"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/strategy"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	engineConfig := engine.DefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read engine config: %w", err)
		}

		engineConfig, err = engine.ParseConfig(raw)
		if err != nil {
			return err
		}
	}

	rawStrategy, err := os.ReadFile(cmd.String("strategy"))
	if err != nil {
		return fmt.Errorf("failed to read strategy config: %w", err)
	}

	strategyConfig, err := strategy.ParseConfig(rawStrategy)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(cmd.String("data"))
	if err != nil {
		return fmt.Errorf("failed to resolve data glob: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no data files match %q", cmd.String("data"))
	}

	outputDir := cmd.String("output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	bar := progressbar.Default(int64(len(files)), "backtesting")

	exportTrades := cmd.Bool("export-trades")

	for _, file := range files {
		if err := runFile(log, file, engineConfig, strategyConfig, outputDir, exportTrades); err != nil {
			return err
		}

		if err := bar.Add(1); err != nil {
			return err
		}
	}

	return nil
}

func runFile(log *logger.Logger, file string, engineConfig engine.Config, strategyConfig strategy.Config, outputDir string, exportTrades bool) error {
	source, err := datasource.NewDuckDBDataSource("", log)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Initialize(file); err != nil {
		return err
	}

	candles, err := source.LoadAll()
	if err != nil {
		return err
	}

	runStrategy, err := strategy.New(strategyConfig, log)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(engineConfig, log)

	if err := runStrategy.Execute(candles, eng); err != nil {
		return err
	}

	report := eng.Results()

	runID := uuid.New().String()
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.yaml", base, runID))

	if err := types.WriteReport(outputPath, *report); err != nil {
		return err
	}

	if exportTrades {
		tradesPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s_trades.csv", base, runID))
		if err := writeTradesCSV(tradesPath, report.Trades); err != nil {
			return err
		}
	}

	log.Info("backtest finished",
		zap.String("data", file),
		zap.String("strategy", runStrategy.Name()),
		zap.String("report", outputPath),
		zap.Int("trades", report.Statistics.TotalTrades),
		zap.Float64("total_pnl", report.Statistics.TotalPnL),
	)

	return nil
}

func writeTradesCSV(path string, trades []types.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trade export: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write([]string{
		"entry_time", "exit_time", "direction", "entry_price", "exit_price",
		"size", "pnl", "pnl_percent", "commission",
	}); err != nil {
		return err
	}

	for _, trade := range trades {
		record := []string{
			strconv.FormatInt(trade.EntryTime, 10),
			strconv.FormatInt(trade.ExitTime, 10),
			string(trade.Direction),
			strconv.FormatFloat(trade.EntryPrice, 'f', -1, 64),
			strconv.FormatFloat(trade.ExitPrice, 'f', -1, 64),
			strconv.FormatFloat(trade.Size, 'f', -1, 64),
			strconv.FormatFloat(trade.PnL, 'f', -1, 64),
			strconv.FormatFloat(trade.PnLPercent, 'f', -1, 64),
			strconv.FormatFloat(trade.Commission, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	config := engine.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run trading strategy backtests over historical candle data",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a strategy over one or more candle files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Candle file or glob (CSV or Parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Strategy config file (YAML or JSON)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Engine config file (YAML); defaults apply when omitted",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for report files",
						Value:   "results",
					},
					&cli.BoolFlag{
						Name:  "export-trades",
						Usage: "Also write the trade log as CSV next to the report",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the engine config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
