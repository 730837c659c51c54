package stream

import (
	"fmt"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/internal/options"
	"go.uber.org/zap"
)

// Config holds stream construction settings.
type Config struct {
	policy GrowthPolicy
	name   string
	logger *zap.Logger
}

// Option configures a stream.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		policy: Doubling,
		logger: zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithGrowthPolicy sets the capacity growth policy. The default is Doubling.
func WithGrowthPolicy(p GrowthPolicy) Option {
	return options.New(func(c *Config) error {
		if !p.Valid() {
			return fmt.Errorf("%w: growth policy %d", errs.ErrInvalidArgument, p)
		}
		c.policy = p

		return nil
	})
}

// WithName sets the name used in log fields and metrics.
func WithName(name string) Option {
	return options.NoError(func(c *Config) {
		c.name = name
	})
}

// WithLogger sets the logger used for reallocation and trim events.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}
