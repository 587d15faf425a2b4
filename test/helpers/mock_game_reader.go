package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/traveller-go/internal/domain/crew"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// MockGameReader is a test double for ports.GameReader. Every field is
// returned as configured; Err, when set, fails every read.
type MockGameReader struct {
	mu sync.Mutex

	State        *vessel.ResourceState
	Hold         []trading.HoldEntry
	Offers       []trading.CargoOffer
	Demand       []trading.TicketDemand
	Freight      []trading.FreightLot
	Ledger       []trading.LedgerEntry
	Transactions []trading.TradeRecord
	Systems      []trading.StarSystem
	Encounters   []vessel.Encounter
	Crew         []crew.Member
	Skills       map[int][]crew.Skill
	Assignments  map[int][]crew.Assignment
	Err          error
	// MemberErr fails the skill and assignment reads of one crew member
	MemberErr    map[int]error

	calls map[string]int
}

var _ ports.GameReader = (*MockGameReader)(nil)

// NewMockGameReader creates a reader serving the given vessel snapshot
func NewMockGameReader(state *vessel.ResourceState) *MockGameReader {
	return &MockGameReader{State: state, calls: make(map[string]int)}
}

func (m *MockGameReader) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
	return m.Err
}

// Calls reports how often a read was made
func (m *MockGameReader) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockGameReader) ShipData(ctx context.Context, id trading.Identity) (*vessel.ResourceState, error) {
	if err := m.record("ShipData"); err != nil {
		return nil, err
	}
	return m.State, nil
}

func (m *MockGameReader) Cargo(ctx context.Context, id trading.Identity) ([]trading.HoldEntry, error) {
	if err := m.record("Cargo"); err != nil {
		return nil, err
	}
	return m.Hold, nil
}

func (m *MockGameReader) SpeculativeOffers(ctx context.Context, id trading.Identity) ([]trading.CargoOffer, error) {
	if err := m.record("SpeculativeOffers"); err != nil {
		return nil, err
	}
	return m.Offers, nil
}

func (m *MockGameReader) PassengersAvailable(ctx context.Context, id trading.Identity) ([]trading.TicketDemand, error) {
	if err := m.record("PassengersAvailable"); err != nil {
		return nil, err
	}
	return m.Demand, nil
}

func (m *MockGameReader) StandardFreight(ctx context.Context, id trading.Identity) ([]trading.FreightLot, error) {
	if err := m.record("StandardFreight"); err != nil {
		return nil, err
	}
	return m.Freight, nil
}

func (m *MockGameReader) ShipsLedger(ctx context.Context, id trading.Identity) ([]trading.LedgerEntry, error) {
	if err := m.record("ShipsLedger"); err != nil {
		return nil, err
	}
	return m.Ledger, nil
}

func (m *MockGameReader) SpeculativeTransactions(ctx context.Context, id trading.Identity) ([]trading.TradeRecord, error) {
	if err := m.record("SpeculativeTransactions"); err != nil {
		return nil, err
	}
	return m.Transactions, nil
}

func (m *MockGameReader) SystemsByName(ctx context.Context, query string) ([]trading.StarSystem, error) {
	if err := m.record("SystemsByName"); err != nil {
		return nil, err
	}
	return m.Systems, nil
}

func (m *MockGameReader) SpaceEncounters(ctx context.Context, id trading.Identity) ([]vessel.Encounter, error) {
	if err := m.record("SpaceEncounters"); err != nil {
		return nil, err
	}
	return m.Encounters, nil
}

func (m *MockGameReader) CrewData(ctx context.Context, id trading.Identity) ([]crew.Member, error) {
	if err := m.record("CrewData"); err != nil {
		return nil, err
	}
	return m.Crew, nil
}

func (m *MockGameReader) CrewMemberSkills(ctx context.Context, id trading.Identity, memberID int) ([]crew.Skill, error) {
	if err := m.record("CrewMemberSkills"); err != nil {
		return nil, err
	}
	if err := m.MemberErr[memberID]; err != nil {
		return nil, err
	}
	return m.Skills[memberID], nil
}

func (m *MockGameReader) CrewMemberAssignments(ctx context.Context, id trading.Identity, memberID int) ([]crew.Assignment, error) {
	if err := m.record("CrewMemberAssignments"); err != nil {
		return nil, err
	}
	if err := m.MemberErr[memberID]; err != nil {
		return nil, err
	}
	return m.Assignments[memberID], nil
}
