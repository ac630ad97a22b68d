package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// Option configures the API server.
type Option func(*options)

type options struct {
	log      logger.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the logger used for request logging.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithGatherer replaces the metrics registry served on /healthz.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) {
		if g != nil {
			o.gatherer = g
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.Nop(), gatherer: metrics.GetRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
