package stagepool

import "errors"

const (
	KiB = 1024
	MiB = KiB * KiB
)

type Config struct {
	// MaxCapacityBytes is a soft ceiling on the bytes the pool obtains
	// from the backing allocator. Reuse of resident chunks is always
	// permitted; only growth past the ceiling is refused, and a single
	// admission may overshoot it by up to one class size.
	MaxCapacityBytes int64
}

func (c Config) Validate() error {
	var errs []error
	if c.MaxCapacityBytes < 0 {
		errs = append(errs, errors.New("invalid config: MaxCapacityBytes must be non-negative"))
	}
	return errors.Join(errs...)
}

func DefaultConfig() Config {
	return Config{
		MaxCapacityBytes: 256 * MiB, // Enough for a full scene's worth of staged geometry.
	}
}
