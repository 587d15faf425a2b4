package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/traveller-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// Outcome is a successful dispatch
type Outcome struct {
	Action     trading.Action
	RequestID  string
	StatusCode int
	Message    string
}

// Dispatcher submits TransactionRequests for one vessel and classifies the
// replies. At most one dispatch per action is in flight at a time; it holds
// no other state and never retries.
type Dispatcher struct {
	transport ports.Transport
	identity  trading.Identity
	clock     shared.Clock

	mu   sync.Mutex
	busy map[trading.Action]bool
}

// NewDispatcher creates a dispatcher acting on the given vessel
func NewDispatcher(transport ports.Transport, identity trading.Identity, clock shared.Clock) *Dispatcher {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Dispatcher{
		transport: transport,
		identity:  identity,
		clock:     clock,
		busy:      make(map[trading.Action]bool),
	}
}

// Identity returns the game and vessel this dispatcher acts on
func (d *Dispatcher) Identity() trading.Identity {
	return d.identity
}

// Busy reports whether a dispatch for action is outstanding
func (d *Dispatcher) Busy(action trading.Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy[action]
}

func (d *Dispatcher) acquire(action trading.Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy[action] {
		return false
	}
	d.busy[action] = true
	return true
}

func (d *Dispatcher) release(action trading.Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.busy, action)
}

// Dispatch submits req. Failures are *shared.DispatchInProgressError,
// *shared.TransportError or *shared.BusinessRejection.
func (d *Dispatcher) Dispatch(ctx context.Context, req trading.TransactionRequest) (*Outcome, error) {
	action := req.Action()
	logger := logging.LoggerFromContext(ctx)

	if !d.acquire(action) {
		metrics.RecordDispatch(string(action), metrics.OutcomeInProgress, 0)
		return nil, shared.NewDispatchInProgressError(string(action))
	}
	defer d.release(action)

	rt, err := routeFor(d.identity, req)
	if err != nil {
		return nil, err
	}

	requestID := mediator.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = mediator.WithRequestID(ctx, requestID)
	}

	logger.Log(logging.LevelInfo, "Dispatching transaction", map[string]interface{}{
		"action":     string(action),
		"method":     rt.method,
		"path":       rt.path,
		"request_id": requestID,
	})

	start := d.clock.Now()
	reply, sendErr := d.transport.Send(ctx, rt.method, rt.path, rt.payload)
	elapsed := d.clock.Now().Sub(start).Seconds()

	message, err := Classify(string(action), rt.sentinel, reply, sendErr)
	if err != nil {
		var rejection *shared.BusinessRejection
		if errors.As(err, &rejection) {
			metrics.RecordDispatch(string(action), metrics.OutcomeRejected, elapsed)
			logger.Log(logging.LevelWarn, "Transaction rejected", map[string]interface{}{
				"action":     string(action),
				"reason":     rejection.Reason,
				"request_id": requestID,
			})
		} else {
			metrics.RecordDispatch(string(action), metrics.OutcomeTransport, elapsed)
			logger.Log(logging.LevelError, "Transaction failed", map[string]interface{}{
				"action":     string(action),
				"error":      err.Error(),
				"request_id": requestID,
			})
		}
		return nil, err
	}

	metrics.RecordDispatch(string(action), metrics.OutcomeSuccess, elapsed)
	logger.Log(logging.LevelInfo, "Transaction succeeded", map[string]interface{}{
		"action":     string(action),
		"request_id": requestID,
	})

	return &Outcome{
		Action:     action,
		RequestID:  requestID,
		StatusCode: reply.StatusCode,
		Message:    message,
	}, nil
}
