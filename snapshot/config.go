package snapshot

import (
	"fmt"

	"github.com/arloliu/spreadbuf/endian"
	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/format"
	"github.com/arloliu/spreadbuf/internal/options"
	"go.uber.org/zap"
)

// Config holds snapshot encoding and decoding settings.
type Config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	logger      *zap.Logger
}

// Option configures snapshot encoding or decoding.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		compression: format.CompressionNone,
		engine:      endian.GetLittleEndianEngine(),
		logger:      zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression sets the payload compression. The default is none.
// Decoding reads the compression from the header and ignores this option.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
			return nil
		default:
			return fmt.Errorf("%w: compression %d", errs.ErrInvalidArgument, c)
		}
	})
}

// WithLittleEndian encodes with little-endian byte order. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian encodes with big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithLogger sets the logger for encode and restore events.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		cfg.logger = logger
	})
}
