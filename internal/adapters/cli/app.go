package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/andrescamacho/traveller-go/internal/adapters/api"
	"github.com/andrescamacho/traveller-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/infrastructure/config"
	infralogging "github.com/andrescamacho/traveller-go/internal/infrastructure/logging"
)

// app holds everything one CLI invocation needs: configuration, the game
// client and the mediator with every handler registered.
type app struct {
	cfg        *config.Config
	client     *api.GameClient
	dispatcher *dispatch.Dispatcher
	mediator   mediator.Mediator
	logger     logging.Logger
	logCloser  io.Closer
}

// newApp loads configuration and wires the application
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := infralogging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled || showMetrics {
		if err := metrics.Enable(); err != nil {
			closer.Close()
			return nil, fmt.Errorf("failed to enable metrics: %w", err)
		}
	}

	clock := shared.NewRealClock()
	client := api.NewGameClient(api.ClientConfig{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RequestsPerSec: cfg.API.RateLimit.Requests,
		Burst:          cfg.API.RateLimit.Burst,
		MaxFailures:    cfg.API.CircuitBreaker.MaxFailures,
		OpenTimeout:    cfg.API.CircuitBreaker.Timeout,
		Clock:          clock,
	})
	identity := trading.Identity{GameID: cfg.Game.GameID, ShipID: cfg.Game.ShipID}
	dispatcher := dispatch.NewDispatcher(client, identity, clock)

	med, err := newMediator(client, dispatcher)
	if err != nil {
		closer.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		mediator:   med,
		logger:     logger,
		logCloser:  closer,
	}, nil
}

// newMediator registers the middleware chain and every ship handler
func newMediator(reader ports.GameReader, dispatcher *dispatch.Dispatcher) (mediator.Mediator, error) {
	med := mediator.NewMediator()

	// Middleware runs outermost first: request id, then logging, then metrics
	med.Use(mediator.RequestIDMiddleware())
	med.Use(logging.Middleware())
	med.Use(metrics.PrometheusMiddleware(metrics.CommandCollector()))

	identity := dispatcher.Identity()

	// Queries
	statusHandler := queries.NewStatusHandler(reader, identity)
	if err := mediator.RegisterHandler[*queries.ShipStatusQuery](med, statusHandler); err != nil {
		return nil, fmt.Errorf("failed to register ShipStatus handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.CargoHoldQuery](med, statusHandler); err != nil {
		return nil, fmt.Errorf("failed to register CargoHold handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.FuelOptionsQuery](med, statusHandler); err != nil {
		return nil, fmt.Errorf("failed to register FuelOptions handler: %w", err)
	}

	marketHandler := queries.NewMarketHandler(reader, identity)
	if err := mediator.RegisterHandler[*queries.OffersQuery](med, marketHandler); err != nil {
		return nil, fmt.Errorf("failed to register Offers handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.FreightQuery](med, marketHandler); err != nil {
		return nil, fmt.Errorf("failed to register Freight handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.PassengersQuery](med, marketHandler); err != nil {
		return nil, fmt.Errorf("failed to register Passengers handler: %w", err)
	}

	historyHandler := queries.NewHistoryHandler(reader, identity)
	if err := mediator.RegisterHandler[*queries.LedgerQuery](med, historyHandler); err != nil {
		return nil, fmt.Errorf("failed to register Ledger handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.TransactionsQuery](med, historyHandler); err != nil {
		return nil, fmt.Errorf("failed to register Transactions handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.SystemSearchQuery](med, historyHandler); err != nil {
		return nil, fmt.Errorf("failed to register SystemSearch handler: %w", err)
	}

	crewHandler := queries.NewCrewHandler(reader, identity)
	if err := mediator.RegisterHandler[*queries.EncountersQuery](med, crewHandler); err != nil {
		return nil, fmt.Errorf("failed to register Encounters handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.CrewRosterQuery](med, crewHandler); err != nil {
		return nil, fmt.Errorf("failed to register CrewRoster handler: %w", err)
	}

	// Commands
	if err := mediator.RegisterHandler[*commands.PurchaseCargoCommand](med, commands.NewPurchaseCargoHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register PurchaseCargo handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.SellCargoCommand](med, commands.NewSellCargoHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register SellCargo handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.BuyFuelCommand](med, commands.NewBuyFuelHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register BuyFuel handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.LoadFreightCommand](med, commands.NewLoadFreightHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register LoadFreight handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.SellTicketsCommand](med, commands.NewSellTicketsHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register SellTickets handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.FindBrokerOfferCommand](med, commands.NewFindBrokerOfferHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register FindBrokerOffer handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.DeclareDestinationCommand](med, commands.NewDeclareDestinationHandler(dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register DeclareDestination handler: %w", err)
	}
	if err := mediator.RegisterHandler[*commands.ShipActionCommand](med, commands.NewShipActionHandler(reader, dispatcher)); err != nil {
		return nil, fmt.Errorf("failed to register ShipAction handler: %w", err)
	}

	return med, nil
}

// context returns a base context carrying the configured logger
func (a *app) context() context.Context {
	return logging.WithLogger(context.Background(), a.logger)
}

// send runs request through the mediator
func (a *app) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(ctx, request)
}

// Close releases the log file, if any
func (a *app) Close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// withApp wraps a command body with app setup and teardown
func withApp(run func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return run(a)
}
