package queries

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/crew"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/internal/domain/vessel"
)

// crewFetchLimit bounds the per-member reads in flight at once
const crewFetchLimit = 4

// EncountersQuery loads the space encounter log
type EncountersQuery struct{}

// EncountersResponse lists encounters oldest first
type EncountersResponse struct {
	Encounters []vessel.Encounter
}

// CrewRosterQuery loads every crew member with their skills and assignments
type CrewRosterQuery struct{}

// RosterEntry is one crew card. A failed skill or assignment read leaves
// its list empty and records the failure text; the rest of the card stands.
type RosterEntry struct {
	Member           crew.Member
	Skills           []crew.Skill
	Assignments      []crew.Assignment
	SkillsError      string
	AssignmentsError string
}

// CrewRosterResponse lists crew members in service order
type CrewRosterResponse struct {
	Entries []RosterEntry
}

// CrewHandler answers EncountersQuery and CrewRosterQuery
type CrewHandler struct {
	reader   ports.GameReader
	identity trading.Identity
}

// NewCrewHandler creates a handler for the crew and encounter queries
func NewCrewHandler(reader ports.GameReader, identity trading.Identity) *CrewHandler {
	return &CrewHandler{reader: reader, identity: identity}
}

// Handle executes a crew or encounter query
func (h *CrewHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch request.(type) {
	case *EncountersQuery:
		encounters, err := h.reader.SpaceEncounters(ctx, h.identity)
		if err != nil {
			return nil, fmt.Errorf("failed to load space encounters: %w", err)
		}
		return &EncountersResponse{Encounters: vessel.Chronological(encounters)}, nil

	case *CrewRosterQuery:
		return h.roster(ctx)

	default:
		return nil, invalidRequest("a crew query")
	}
}

// roster loads the members, then each member's skills and assignments
// concurrently. Only the member list itself can fail the query.
func (h *CrewHandler) roster(ctx context.Context) (*CrewRosterResponse, error) {
	members, err := h.reader.CrewData(ctx, h.identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew: %w", err)
	}

	logger := logging.LoggerFromContext(ctx)
	resp := &CrewRosterResponse{Entries: make([]RosterEntry, len(members))}

	var g errgroup.Group
	g.SetLimit(crewFetchLimit)
	for i, m := range members {
		m := m
		entry := &resp.Entries[i]
		entry.Member = m

		g.Go(func() error {
			skills, err := h.reader.CrewMemberSkills(ctx, h.identity, m.ID)
			if err != nil {
				entry.SkillsError = err.Error()
				logger.Log(logging.LevelError, "Crew skills read failed", map[string]interface{}{
					"crew_member_id": m.ID,
					"error":          err.Error(),
				})
				return nil
			}
			entry.Skills = crew.SortSkills(skills)
			return nil
		})
		g.Go(func() error {
			assignments, err := h.reader.CrewMemberAssignments(ctx, h.identity, m.ID)
			if err != nil {
				entry.AssignmentsError = err.Error()
				logger.Log(logging.LevelError, "Crew assignments read failed", map[string]interface{}{
					"crew_member_id": m.ID,
					"error":          err.Error(),
				})
				return nil
			}
			entry.Assignments = assignments
			return nil
		})
	}
	_ = g.Wait()

	return resp, nil
}
