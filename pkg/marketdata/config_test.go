package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() DownloadConfig {
	return DownloadConfig{
		Ticker:    "BTCUSDT",
		StartDate: "2024-01-01T00:00:00Z",
		EndDate:   "2024-02-01T00:00:00Z",
		Interval:  "1h",
	}
}

func TestDownloadConfigValidate(t *testing.T) {
	config := validConfig()
	assert.NoError(t, config.Validate())
}

func TestDownloadConfigRejectsBadInterval(t *testing.T) {
	config := validConfig()
	config.Interval = "7m"
	assert.Error(t, config.Validate())
}

func TestDownloadConfigRejectsBadDates(t *testing.T) {
	config := validConfig()
	config.StartDate = "2024-01-01"
	assert.Error(t, config.Validate())

	config = validConfig()
	config.Ticker = ""
	assert.Error(t, config.Validate())
}

func TestDownloadConfigRange(t *testing.T) {
	config := validConfig()

	start, end, err := config.Range()
	require.NoError(t, err)
	assert.True(t, end.After(start))

	config.EndDate = config.StartDate

	_, _, err = config.Range()
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ProviderBinance)
	require.NoError(t, err)
	assert.NotNil(t, provider)

	_, err = NewProvider("polygon")
	assert.Error(t, err)
}
