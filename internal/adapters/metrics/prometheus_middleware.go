package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
)

// PrometheusMiddleware records execution duration and success/failure counts
// for every command and query sent through the mediator. Command names are
// simplified to the bare type name, e.g. "*commands.BuyFuelCommand" becomes
// "BuyFuelCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(logging.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
