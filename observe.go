package solr

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solr/internal/logger"
	"github.com/kailas-cloud/solr/internal/metrics"
)

// observer provides logging and metrics for client operations.
type observer struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newObserver(l *zap.Logger, m *metrics.Metrics) *observer {
	if l == nil {
		l = zap.NewNop()
	}
	return &observer{logger: l, metrics: m}
}

func (o *observer) observe(
	ctx context.Context, op string, start time.Time, err error, fields ...zap.Field,
) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.Operations.WithLabelValues(op, status).Inc()
		o.metrics.OperationDuration.WithLabelValues(op).Observe(dur.Seconds())
	}

	log := logger.FromContextOr(ctx, o.logger)
	if err != nil {
		log.Warn("operation failed",
			zap.String("op", op),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	log.Debug("operation completed",
		append([]zap.Field{zap.String("op", op), zap.Duration("duration", dur)}, fields...)...,
	)
}
