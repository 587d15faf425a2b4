package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/adapters/api"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

var testIdentity = trading.Identity{GameID: 3, ShipID: 7}

const shipDataJSON = `{"Data":[{
	"ShipName":"Beowulf","PreparingForDeparture":true,
	"Day":12,"Year":1105,"Time":"08:00",
	"System":"Regina","SystemUWP":"A788899-C",
	"DeclaredDestination":"Efate","DeclaredDestinationSector":"Spinward Marches","DeclaredDestinationSystem":"1705",
	"FuelOnboard":10,"FuelCapacity":40,"RefinedFuel":true,
	"CargoSpaceFilled":20,"CargoSpace":82,"ShipsBank":"125000.50",
	"MaintenanceDay":1,"MaintenanceYear":1105,"MaintenanceDue":-3,
	"MortgageYear":null,"MortgageDay":null,"MortgageDue":null,"Payments":0,"Mortgage":null,
	"HullSize":200,"JDrive":1,
	"LowBerths":20,"LowPassengers":2,"Basic":0,"BasicPassengers":0,
	"Middle":4,"MiddlePassengers":1,"High":4,"HighPassengers":0,
	"Luxury":0,"LuxuryPassengers":0,
	"BuyBrokerAttempts":1,"SellBrokerAttempts":0
}],"Links":[]}`

func newClient(t *testing.T, handler http.HandlerFunc) *api.GameClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewGameClient(api.ClientConfig{
		BaseURL:        server.URL,
		RequestsPerSec: 1000,
		Burst:          1000,
		MaxFailures:    2,
		OpenTimeout:    time.Minute,
		Clock:          shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestGameClient_ShipData(t *testing.T) {
	// Arrange
	var gotPath string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, shipDataJSON)
	})

	// Act
	state, err := client.ShipData(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/ShipData/3/7", gotPath)
	assert.Equal(t, "Beowulf", state.Name)
	assert.Equal(t, "A", state.StarportCode())
	assert.Equal(t, 62, state.Cargo.Free())
	assert.Equal(t, 30, state.Fuel.Headroom())
	assert.Equal(t, "125000.5", state.Bank.String())
	assert.Nil(t, state.Mortgage)
	require.NotNil(t, state.Destination)
	assert.Equal(t, "Efate", state.Destination.Name)
	assert.Equal(t, vessel.Berth{Berths: 4, Onboard: 1}, state.Passengers.Class(vessel.Middle))
	assert.Equal(t, 1, state.BrokerAttempts.Buy)
}

func TestGameClient_ShipDataSchemaViolation(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Data":[{"ShipName":"Beowulf"}]}`)
	})

	// Act
	state, err := client.ShipData(context.Background(), testIdentity)

	// Assert
	assert.Nil(t, state)
	var violation *shared.SchemaViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "ShipData", violation.Resource)
}

func TestGameClient_CollectionWithMalformedEntryIsEmpty(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Data":[
			{"LotID":1,"System":"Regina","LotType":"Major","dTons":20,"Value":10000},
			{"LotID":2,"System":"Regina","LotType":"Minor","dTons":"lots","Value":500}
		]}`)
	})

	// Act
	lots, err := client.StandardFreight(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, lots)
	assert.Empty(t, lots)
}

func TestGameClient_CollectionDecodes(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Data":[
			{"OfferId":11,"TradeGood":"Radioactives","BasePrice":"1000000","dTonsAvailable":null,
			 "Price":"850000","Percent":85,"StarSystem":"Regina","UWP":"A788899-C",
			 "Day":12,"Year":1105,"Time":"08:00","OfferType":"Buy","Attempt":1}
		]}`)
	})

	// Act
	offers, err := client.SpeculativeOffers(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.True(t, offers[0].Unlimited())
	assert.Equal(t, trading.Buy, offers[0].Direction)
	assert.Equal(t, "850000", offers[0].Price.String())
}

func TestGameClient_SystemsByNameEscapesQuery(t *testing.T) {
	// Arrange
	var gotPath string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{"Data":[]}`)
	})

	// Act
	systems, err := client.SystemsByName(context.Background(), "New Rome")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, systems)
	assert.Equal(t, "/GetSystemsByName/New%20Rome", gotPath)
}

func TestGameClient_CancelledCallerDoesNotFailSharedRead(t *testing.T) {
	// Arrange
	arrived := make(chan struct{}, 4)
	release := make(chan struct{})
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		_, _ = io.WriteString(w, `{"Data":[{"System":"Efate","Sector":"Spinward Marches","UWP":"A646930D","SectorID":3,"SystemID":1705,"Zone":"Green"}]}`)
	})
	releaseAll := sync.OnceFunc(func() { close(release) })
	defer releaseAll()

	cancelled, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := client.SystemsByName(cancelled, "Efa")
		first <- err
	}()
	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("first search never reached the server")
	}

	type result struct {
		systems []trading.StarSystem
		err     error
	}
	second := make(chan result, 1)
	go func() {
		systems, err := client.SystemsByName(context.Background(), "Efa")
		second <- result{systems, err}
	}()

	// Act
	cancel()
	firstErr := <-first
	releaseAll()

	// Assert
	assert.ErrorIs(t, firstErr, context.Canceled)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		require.Len(t, res.systems, 1)
		assert.Equal(t, "Efate", res.systems[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("live search did not complete")
	}
}

func TestGameClient_ReadNon2xxIsTransportError(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// Act
	_, err := client.Cargo(context.Background(), testIdentity)

	// Assert
	var transport *shared.TransportError
	require.True(t, errors.As(err, &transport))
	assert.Equal(t, http.StatusNotFound, transport.StatusCode)
}

func TestGameClient_SendSetsMutationHeaders(t *testing.T) {
	// Arrange
	var got http.Header
	var method string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		method = r.Method
		_, _ = io.WriteString(w, "This API call succeeded")
	})
	ctx := mediator.WithRequestID(context.Background(), "req-42")

	// Act
	reply, err := client.Send(ctx, http.MethodPatch, "/BuyFuel", map[string]int{"dTonsOfFuel": 5})

	// Assert
	require.NoError(t, err)
	assert.True(t, reply.OK())
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "text/plain", got.Get("Accept"))
	assert.Equal(t, "req-42", got.Get(api.RequestIDHeader))
}

func TestGameClient_SendReturnsServerErrorReply(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "This API is down")
	})

	// Act
	reply, err := client.Send(context.Background(), http.MethodPatch, "/BuyFuel", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, reply.StatusCode)
	assert.Equal(t, 1, client.Breaker().FailureCount())
}

func TestGameClient_OpenCircuitSkipsServer(t *testing.T) {
	// Arrange
	var hits int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Act
	for i := 0; i < 2; i++ {
		_, _ = client.Send(context.Background(), http.MethodPatch, "/MoveTheShip", nil)
	}
	_, err := client.Send(context.Background(), http.MethodPatch, "/MoveTheShip", nil)

	// Assert
	assert.ErrorIs(t, err, api.ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, api.CircuitOpen, client.Breaker().State())
}

func TestGameClient_ClientErrorDoesNotTripBreaker(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	// Act
	for i := 0; i < 3; i++ {
		_, _ = client.Send(context.Background(), http.MethodPatch, "/BuyFuel", nil)
	}

	// Assert
	assert.Equal(t, api.CircuitClosed, client.Breaker().State())
	assert.Equal(t, 0, client.Breaker().FailureCount())
}

func TestGameClient_SpaceEncountersDecode(t *testing.T) {
	// Arrange
	var gotPath string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"Data":[
			{"Encounter":"Pirates","Rolled":11,"System":"Efate","UWP":"A646930D",
			 "SectorID":3,"SystemID":1705,"Day":45,"EncounterYear":1105,"LoggedTime":"13:20:00"}
		]}`)
	})

	// Act
	encounters, err := client.SpaceEncounters(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/SpaceEncounters/3/7", gotPath)
	require.Len(t, encounters, 1)
	assert.Equal(t, "Pirates", encounters[0].Name)
	assert.Equal(t, 11, encounters[0].Rolled)
	assert.Equal(t, "1105-045 13:20:00", encounters[0].LoggedAt())
}

func TestGameClient_CrewDataDecode(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Data":[
			{"CrewMemberID":4,"FirstName":"Marc","LastName":"Hault",
			 "STR":7,"DEX":9,"END":6,"INT":11,"EDU":12,"SOC":10,"CHA":null,
			 "CFI":2,"FCM":1,"FDM":0,"Fatigued":1,"Bank":1500,"Portrait":null}
		]}`)
	})

	// Act
	members, err := client.CrewData(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	require.Len(t, members, 1)
	m := members[0]
	assert.Equal(t, "Marc Hault", m.Name())
	assert.Equal(t, 12, m.Characteristics.EDU)
	assert.Nil(t, m.Charisma)
	assert.True(t, m.Fatigued)
	assert.Equal(t, "1500", m.Bank.String())
	assert.Empty(t, m.Portrait)
}

func TestGameClient_CrewDataMissingCharacteristicIsEmpty(t *testing.T) {
	// Arrange
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Data":[
			{"CrewMemberID":4,"FirstName":"Marc","LastName":"Hault",
			 "STR":7,"DEX":9,"END":6,"INT":11,"EDU":12,
			 "CFI":2,"FCM":1,"FDM":0,"Fatigued":0,"Bank":1500}
		]}`)
	})

	// Act
	members, err := client.CrewData(context.Background(), testIdentity)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestGameClient_CrewMemberReadsUseMemberPath(t *testing.T) {
	// Arrange
	var paths []string
	var mu sync.Mutex
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if strings.HasPrefix(r.URL.Path, "/CrewMemberSkills/") {
			_, _ = io.WriteString(w, `{"Data":[{"CrewMemberID":4,"SkillName":"Pilot","Level":2}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"Data":[{"CrewMemberID":4,"FirstName":"Marc","LastName":"Hault","Assignment":"Pilot"}]}`)
	})

	// Act
	skills, skillsErr := client.CrewMemberSkills(context.Background(), testIdentity, 4)
	assignments, assignmentsErr := client.CrewMemberAssignments(context.Background(), testIdentity, 4)

	// Assert
	require.NoError(t, skillsErr)
	require.NoError(t, assignmentsErr)
	assert.Equal(t, []string{"/CrewMemberSkills/3/7/4", "/CrewMemberAssignments/3/7/4"}, paths)
	require.Len(t, skills, 1)
	assert.Equal(t, 2, skills[0].Level)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Pilot", assignments[0].Duty)
}
