package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/quantpilot/backtest/pkg/errors"
)

// CheckConfigCompatibility checks whether a strategy config written for
// configVersion can run on an engine at engineVersion. Returns nil if
// compatible.
//
// Compatibility rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The engine minor version must be at least the config's minor version
//   - Patch versions can differ freely
func CheckConfigCompatibility(engineVersion, configVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if engineVersion == "main" || configVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeInvalidVersion, "invalid engine version %q", engineVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeInvalidVersion, "invalid config version %q", configVersion)
	}

	if engineSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: engine is %d.x.x but config requires %d.x.x",
			engineSemver.Major(), configSemver.Major())
	}

	if engineSemver.Minor() < configSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"config requires %d.%d.x but engine is %d.%d.x",
			configSemver.Major(), configSemver.Minor(),
			engineSemver.Major(), engineSemver.Minor())
	}

	return nil
}
