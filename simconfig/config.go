// Package simconfig holds the build-time configuration record (spec.md
// §6) and validates it declaratively, the way the pack's gin-backed
// services (tarsy, echollama) validate request structs with
// go-playground/validator rather than hand-rolled if-chains.
package simconfig

import (
	"github.com/go-playground/validator/v10"

	"github.com/transitforge/meridian/simerr"
)

// Config is the build-time configuration record (spec.md §6).
type Config struct {
	StartUnixSecs        int64  `validate:"-"`
	TickDurationSecs     uint32 `validate:"required,gt=0"`
	TotalTicks           uint64 `validate:"-"`
	Seed                 uint64 `validate:"-"`
	NumThreads           int    `validate:"gte=0"` // 0 means "all available"
	OutputIntervalTicks  uint64 `validate:"-"`      // 0 disables snapshots
}

var validate = validator.New()

// Validate checks the configuration and returns a *simerr.ConfigError
// naming the first offending field, or nil.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &simerr.ConfigError{Field: fe.Field(), Reason: fe.Tag()}
		}
		return &simerr.ConfigError{Field: "config", Reason: err.Error()}
	}
	return nil
}

// Threads returns the effective worker count for phase 4: NumThreads if
// set, otherwise the caller-supplied default (typically
// runtime.NumCPU()).
func (c Config) Threads(defaultThreads int) int {
	if c.NumThreads > 0 {
		return c.NumThreads
	}
	return defaultThreads
}
