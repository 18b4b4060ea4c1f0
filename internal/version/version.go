package version

// Version is the current version of the backtest library.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/quantpilot/backtest/internal/version.Version=1.2.3"
// The default value indicates a development build when set to "main".
var Version = "v1.0.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
