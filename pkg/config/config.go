package config

import (
	"errors"
	"time"

	"github.com/danl5/govote/pkg/common"
)

const (
	// DefaultTick is the length of one simulated second
	DefaultTick = time.Second
	// DefaultServiceTicks is the number of ticks a station server rests after each voter
	DefaultServiceTicks = 2
)

// Config represents the simulation config, immutable for a run
type Config struct {
	// Duration is the run length of the arrival generator and of every station server
	Duration time.Duration `json:"duration" mapstructure:"duration"`
	// Probability is the chance a new voter is a normal voter
	Probability float64 `json:"probability" mapstructure:"probability"`
	// Stations is the number of polling stations
	Stations int `json:"stations" mapstructure:"stations"`
	// ReportOffset is the time after a station server starts before it reports its tally
	ReportOffset time.Duration `json:"report_offset" mapstructure:"report_offset"`
	// Tick is the length of one simulated second
	Tick time.Duration `json:"tick,omitempty" mapstructure:"tick"`
	// ServiceTicks is the number of ticks a station server sleeps after serving a voter
	ServiceTicks int `json:"service_ticks,omitempty" mapstructure:"service_ticks"`
	// Seed seeds the random sources, zero means time based
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

// WithDefaults returns a copy of the config with zero tunables set to their defaults.
func (c Config) WithDefaults() Config {
	if c.Tick == 0 {
		c.Tick = DefaultTick
	}
	if c.ServiceTicks == 0 {
		c.ServiceTicks = DefaultServiceTicks
	}
	return c
}

// Validate rejects a config the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return errors.New(common.ConfigDurationInvalid.String())
	}
	// written this way so that NaN is rejected too
	if !(c.Probability >= 0 && c.Probability <= 1) {
		return errors.New(common.ConfigProbabilityInvalid.String())
	}
	if c.Stations <= 0 {
		return errors.New(common.ConfigStationsInvalid.String())
	}
	if c.ReportOffset < 0 {
		return errors.New(common.ConfigOffsetInvalid.String())
	}
	if c.Tick <= 0 {
		return errors.New(common.ConfigTickInvalid.String())
	}
	if c.ServiceTicks <= 0 {
		return errors.New(common.ConfigServiceTicksInvalid.String())
	}
	return nil
}

// Ticks returns the number of ticks in the simulation duration.
func (c *Config) Ticks() int64 {
	if c.Tick <= 0 {
		return 0
	}
	return int64(c.Duration / c.Tick)
}
