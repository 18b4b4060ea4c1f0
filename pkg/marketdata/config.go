package marketdata

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quantpilot/backtest/pkg/errors"
)

// DownloadConfig describes one historical download request. Binance public
// market data needs no authentication.
type DownloadConfig struct {
	Ticker    string `json:"ticker" yaml:"ticker" jsonschema:"title=Ticker,description=The trading symbol to download data for (e.g. BTCUSDT),required" validate:"required"`
	StartDate string `json:"startDate" yaml:"startDate" jsonschema:"title=Start Date,description=Start date in RFC3339,required" validate:"required"`
	EndDate   string `json:"endDate" yaml:"endDate" jsonschema:"title=End Date,description=End date in RFC3339,required" validate:"required"`
	Interval  string `json:"interval" yaml:"interval" jsonschema:"title=Interval,description=Candle interval,required,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=2h,enum=4h,enum=6h,enum=8h,enum=12h,enum=1d,enum=3d,enum=1w,enum=1M" validate:"required,oneof=1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M"`
}

// Validate validates the download config fields and date formats.
func (c *DownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidTimespan, "invalid download config")
	}

	if _, err := time.Parse(time.RFC3339, c.StartDate); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidTimespan, "invalid startDate, expected RFC3339")
	}

	if _, err := time.Parse(time.RFC3339, c.EndDate); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidTimespan, "invalid endDate, expected RFC3339")
	}

	return nil
}

// Range returns the parsed start and end times. Validate must pass first.
func (c *DownloadConfig) Range() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, errors.ErrCodeInvalidTimespan, "invalid startDate")
	}

	end, err = time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, errors.ErrCodeInvalidTimespan, "invalid endDate")
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeInvalidTimespan, "endDate must be after startDate")
	}

	return start, end, nil
}
