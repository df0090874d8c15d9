package handler

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option is a functional option for configuring a [Handler].
type Option func(*Options)

// Options holds the configuration for a [Handler].
type Options struct {
	logger logrus.FieldLogger
}

func newOptions() *Options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &Options{
		logger: discard,
	}
}

// WithLogger sets the logger used by the handler. A nil logger is ignored
// and the default, which discards all output, is kept.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
