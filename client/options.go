package client

import (
	"crypto/tls"
	"log/slog"
)

// Option is a functional option for configuring the client.
type Option func(*Options)

// Options holds all client configuration.
type Options struct {
	// TLSConfig is the TLS configuration for TLS connections.
	TLSConfig *tls.Config

	// Logger is the structured logger.
	Logger *slog.Logger

	// SinkBuffer is the per-subscriber buffer size of the unilateral
	// sink. When a subscriber's buffer is full its oldest unread record
	// is dropped.
	SinkBuffer int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Logger:     slog.Default(),
		SinkBuffer: 64,
	}
}

func applyOptions(opts []Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithTLSConfig sets the TLS configuration.
func WithTLSConfig(config *tls.Config) Option {
	return func(o *Options) {
		o.TLSConfig = config
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSinkBuffer sets the unilateral sink's per-subscriber buffer size.
func WithSinkBuffer(n int) Option {
	return func(o *Options) {
		o.SinkBuffer = n
	}
}
