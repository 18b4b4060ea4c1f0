package marketdata

import (
	"context"
	"fmt"
	"strconv"

	binance "github.com/adshao/go-binance/v2"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
	"github.com/quantpilot/backtest/pkg/marketdata/writer"
)

// binancePageSize is the kline page limit enforced by the Binance API.
const binancePageSize = 500

// BinanceClient downloads historical klines from the Binance public API.
type BinanceClient struct {
	client *binance.Client
	writer writer.CandleWriter
}

// NewBinanceClient creates an unauthenticated Binance client; public kline
// endpoints need no credentials.
func NewBinanceClient() *BinanceClient {
	return &BinanceClient{
		client: binance.NewClient("", ""),
	}
}

// ConfigWriter implements Provider.
func (c *BinanceClient) ConfigWriter(w writer.CandleWriter) {
	c.writer = w
}

// Download implements Provider. Klines are fetched in pages of 500; the
// page cursor advances to one millisecond past the last kline's close time
// to avoid duplicates.
func (c *BinanceClient) Download(ctx context.Context, config DownloadConfig, onProgress OnDownloadProgress) (string, error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "writer is not configured")
	}

	if err := config.Validate(); err != nil {
		return "", err
	}

	start, end, err := config.Range()
	if err != nil {
		return "", err
	}

	if err := c.writer.Initialize(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer")
	}

	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()
	cursor := startMillis

	for {
		if err := ctx.Err(); err != nil {
			c.writer.Close()

			return "", errors.Wrap(err, errors.ErrCodeMarketDataFetchFailed, "download canceled")
		}

		klines, err := c.client.NewKlinesService().
			Symbol(config.Ticker).
			Interval(config.Interval).
			StartTime(cursor).
			EndTime(endMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			c.writer.Close()

			return "", errors.Wrapf(err, errors.ErrCodeMarketDataFetchFailed,
				"failed to fetch %s klines from binance", config.Ticker)
		}

		if onProgress != nil {
			onProgress(float64(cursor-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("downloading %s klines", config.Ticker))
		}

		if err := c.writeKlines(klines); err != nil {
			c.writer.Close()

			return "", err
		}

		// A short page means Binance has no more data in the range.
		if len(klines) < binancePageSize {
			break
		}

		cursor = klines[len(klines)-1].CloseTime + 1
		if cursor >= endMillis {
			break
		}
	}

	path, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer")
	}

	return path, nil
}

// writeKlines converts a page of Binance klines into candles and hands them
// to the writer. The kline open time becomes the candle timestamp.
func (c *BinanceClient) writeKlines(klines []*binance.Kline) error {
	for _, k := range klines {
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		closePrice, _ := strconv.ParseFloat(k.Close, 64)
		volume, _ := strconv.ParseFloat(k.Volume, 64)

		candle := types.Candle{
			Timestamp: k.OpenTime,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
		}

		if err := c.writer.Write(candle); err != nil {
			return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to write candle")
		}
	}

	return nil
}
