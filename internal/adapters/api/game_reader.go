package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/andrescamacho/traveller-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/domain/crew"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// envelope is the service's response wrapper for every read
type envelope struct {
	Data []json.RawMessage `json:"Data"`
}

// wireDTO is a validated wire shape convertible to a domain value
type wireDTO[T any] interface {
	toDomain() T
}

func shipPath(resource string, id trading.Identity) string {
	return fmt.Sprintf("/%s/%d/%d", resource, id.GameID, id.ShipID)
}

// ShipData loads the vessel snapshot from the first element of Data. A
// malformed snapshot is a *shared.SchemaViolationError.
func (c *GameClient) ShipData(ctx context.Context, id trading.Identity) (*vessel.ResourceState, error) {
	const resource = "ShipData"

	body, err := c.get(ctx, resource, shipPath(resource, id))
	if err != nil {
		return nil, err
	}

	entries, err := decodeEnvelope(body)
	if err != nil {
		return nil, c.violation(ctx, resource, err.Error())
	}
	if len(entries) == 0 {
		return nil, c.violation(ctx, resource, "Data is empty")
	}

	dto := &shipDataDTO{}
	if err := c.decode(entries[0], dto); err != nil {
		return nil, c.violation(ctx, resource, err.Error())
	}
	state := dto.toDomain()
	if err := state.Validate(); err != nil {
		return nil, c.violation(ctx, resource, err.Error())
	}

	bank, _ := state.Bank.Float64()
	metrics.RecordVesselSnapshot(state.Name, bank, state.Fuel.Onboard, state.Cargo.Filled, state.Cargo.Capacity)
	return state, nil
}

// Cargo loads the ship's hold entries
func (c *GameClient) Cargo(ctx context.Context, id trading.Identity) ([]trading.HoldEntry, error) {
	return fetchCollection[*cargoDTO, trading.HoldEntry](ctx, c, "Cargo", shipPath("Cargo", id), func() *cargoDTO { return &cargoDTO{} })
}

// SpeculativeOffers loads the offers generated for the ship's current system
func (c *GameClient) SpeculativeOffers(ctx context.Context, id trading.Identity) ([]trading.CargoOffer, error) {
	return fetchCollection[*offerDTO, trading.CargoOffer](ctx, c, "SpeculativeOffers", shipPath("SpeculativeOffers", id), func() *offerDTO { return &offerDTO{} })
}

// PassengersAvailable loads per-class passenger demand
func (c *GameClient) PassengersAvailable(ctx context.Context, id trading.Identity) ([]trading.TicketDemand, error) {
	return fetchCollection[*passengersDTO, trading.TicketDemand](ctx, c, "PassengersAvailable", shipPath("PassengersAvailable", id), func() *passengersDTO { return &passengersDTO{} })
}

// StandardFreight loads the freight lots offered at the current system
func (c *GameClient) StandardFreight(ctx context.Context, id trading.Identity) ([]trading.FreightLot, error) {
	return fetchCollection[*freightDTO, trading.FreightLot](ctx, c, "StandardFreight", shipPath("StandardFreight", id), func() *freightDTO { return &freightDTO{} })
}

// ShipsLedger loads the bank ledger
func (c *GameClient) ShipsLedger(ctx context.Context, id trading.Identity) ([]trading.LedgerEntry, error) {
	return fetchCollection[*ledgerDTO, trading.LedgerEntry](ctx, c, "ShipsLedger", shipPath("ShipsLedger", id), func() *ledgerDTO { return &ledgerDTO{} })
}

// SpeculativeTransactions loads the speculative trade history
func (c *GameClient) SpeculativeTransactions(ctx context.Context, id trading.Identity) ([]trading.TradeRecord, error) {
	return fetchCollection[*tradeRecordDTO, trading.TradeRecord](ctx, c, "SpeculativeTransactions", shipPath("SpeculativeTransactions", id), func() *tradeRecordDTO { return &tradeRecordDTO{} })
}

// SpaceEncounters loads the encounters logged along the ship's route
func (c *GameClient) SpaceEncounters(ctx context.Context, id trading.Identity) ([]vessel.Encounter, error) {
	return fetchCollection[*encounterDTO, vessel.Encounter](ctx, c, "SpaceEncounters", shipPath("SpaceEncounters", id), func() *encounterDTO { return &encounterDTO{} })
}

// CrewData loads the crew roster
func (c *GameClient) CrewData(ctx context.Context, id trading.Identity) ([]crew.Member, error) {
	return fetchCollection[*crewMemberDTO, crew.Member](ctx, c, "CrewData", shipPath("CrewData", id), func() *crewMemberDTO { return &crewMemberDTO{} })
}

// CrewMemberSkills loads one member's skills in service order
func (c *GameClient) CrewMemberSkills(ctx context.Context, id trading.Identity, memberID int) ([]crew.Skill, error) {
	path := fmt.Sprintf("%s/%d", shipPath("CrewMemberSkills", id), memberID)
	return fetchCollection[*crewSkillDTO, crew.Skill](ctx, c, "CrewMemberSkills", path, func() *crewSkillDTO { return &crewSkillDTO{} })
}

// CrewMemberAssignments loads one member's duty assignments
func (c *GameClient) CrewMemberAssignments(ctx context.Context, id trading.Identity, memberID int) ([]crew.Assignment, error) {
	path := fmt.Sprintf("%s/%d", shipPath("CrewMemberAssignments", id), memberID)
	return fetchCollection[*crewAssignmentDTO, crew.Assignment](ctx, c, "CrewMemberAssignments", path, func() *crewAssignmentDTO { return &crewAssignmentDTO{} })
}

// SystemsByName searches star systems by partial name. The minimum query
// length is enforced by the caller.
func (c *GameClient) SystemsByName(ctx context.Context, query string) ([]trading.StarSystem, error) {
	path := "/GetSystemsByName/" + url.PathEscape(query)
	return fetchCollection[*starSystemDTO, trading.StarSystem](ctx, c, "GetSystemsByName", path, func() *starSystemDTO { return &starSystemDTO{} })
}

// fetchCollection loads and validates a Data array. Any malformed entry
// makes the whole collection empty; only transport failures are errors.
func fetchCollection[D wireDTO[T], T any](ctx context.Context, c *GameClient, resource, path string, newDTO func() D) ([]T, error) {
	body, err := c.get(ctx, resource, path)
	if err != nil {
		return nil, err
	}

	entries, err := decodeEnvelope(body)
	if err != nil {
		_ = c.violation(ctx, resource, err.Error())
		return []T{}, nil
	}

	out := make([]T, 0, len(entries))
	for i, raw := range entries {
		dto := newDTO()
		if err := c.decode(raw, dto); err != nil {
			_ = c.violation(ctx, resource, fmt.Sprintf("entry %d: %v", i, err))
			return []T{}, nil
		}
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func decodeEnvelope(body []byte) ([]json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("missing Data array")
	}
	return env.Data, nil
}

func (c *GameClient) decode(raw json.RawMessage, dto interface{}) error {
	if err := json.Unmarshal(raw, dto); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := c.validate.Struct(dto); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// violation logs and counts a schema violation and returns it as an error
func (c *GameClient) violation(ctx context.Context, resource, detail string) error {
	logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Schema violation in service payload", map[string]interface{}{
		"resource": resource,
		"detail":   detail,
	})
	metrics.RecordSchemaViolation(resource)
	return shared.NewSchemaViolationError(resource, detail)
}
