package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/application/dispatch"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/application/ship/commands"
	"github.com/andrescamacho/traveller-go/internal/application/ship/queries"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

func TestNewMediator_RegistersEveryHandler(t *testing.T) {
	// Arrange
	reader := helpers.NewMockGameReader(helpers.NewResourceState())
	transport := helpers.NewMockTransport()
	dispatcher := dispatch.NewDispatcher(transport, helpers.TestIdentity, shared.NewMockClock(time.Time{}))

	// Act
	med, err := newMediator(reader, dispatcher)
	require.NoError(t, err)

	requests := []mediator.Request{
		&queries.ShipStatusQuery{},
		&queries.CargoHoldQuery{},
		&queries.FuelOptionsQuery{},
		&queries.OffersQuery{},
		&queries.FreightQuery{},
		&queries.PassengersQuery{},
		&queries.LedgerQuery{},
		&queries.TransactionsQuery{},
		&queries.SystemSearchQuery{Name: "Efa"},
		&queries.EncountersQuery{},
		&queries.CrewRosterQuery{},
	}

	// Assert
	for _, req := range requests {
		_, err := med.Send(context.Background(), req)
		assert.NoError(t, err, "%T", req)
	}
}

func TestNewMediator_CommandsCarryARequestID(t *testing.T) {
	// Arrange
	reader := helpers.NewMockGameReader(helpers.NewResourceState())
	transport := helpers.NewMockTransport()
	dispatcher := dispatch.NewDispatcher(transport, helpers.TestIdentity, shared.NewMockClock(time.Time{}))
	med, err := newMediator(reader, dispatcher)
	require.NoError(t, err)

	// Act
	resp, err := med.Send(context.Background(), &commands.ShipActionCommand{Action: trading.ActionPerformMaintenance})

	// Assert
	require.NoError(t, err)
	sent := transport.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, "/PerformMaintenance", sent.Path)
	assert.NotEmpty(t, sent.RequestID)
	assert.Equal(t, sent.RequestID, resp.(*commands.TransactionResponse).Outcome.RequestID)
}
