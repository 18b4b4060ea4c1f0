package marketdata

import (
	"context"

	"github.com/quantpilot/backtest/pkg/errors"
	"github.com/quantpilot/backtest/pkg/marketdata/writer"
)

// ProviderType identifies a market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
)

// OnDownloadProgress reports download progress in provider-defined units.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads historical candles into a configured writer.
type Provider interface {
	// ConfigWriter configures the destination the provider writes to.
	ConfigWriter(w writer.CandleWriter)
	// Download fetches candles for the config's ticker and date range and
	// returns the path produced by the writer. The context cancels the
	// download between pages.
	Download(ctx context.Context, config DownloadConfig, onProgress OnDownloadProgress) (path string, err error)
}

// NewProvider creates a market data provider of the given type.
func NewProvider(providerType ProviderType) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider %q", providerType)
	}
}
