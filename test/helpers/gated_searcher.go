package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

// PendingSearch is a SystemsByName call held until the test resolves it
type PendingSearch struct {
	Query string
	reply chan searchReply
}

type searchReply struct {
	systems []trading.StarSystem
	err     error
}

// Resolve completes the call with systems
func (p *PendingSearch) Resolve(systems ...trading.StarSystem) {
	p.reply <- searchReply{systems: systems}
}

// Reject completes the call with err
func (p *PendingSearch) Reject(err error) {
	p.reply <- searchReply{err: err}
}

// GatedSearcher is a ports.SystemSearcher whose responses are released by
// the test in any order
type GatedSearcher struct {
	calls chan *PendingSearch
}

// NewGatedSearcher creates a searcher that can hold up to 16 unclaimed calls
func NewGatedSearcher() *GatedSearcher {
	return &GatedSearcher{calls: make(chan *PendingSearch, 16)}
}

// SystemsByName implements ports.SystemSearcher
func (g *GatedSearcher) SystemsByName(ctx context.Context, query string) ([]trading.StarSystem, error) {
	p := &PendingSearch{Query: query, reply: make(chan searchReply, 1)}
	g.calls <- p
	select {
	case r := <-p.reply:
		return r.systems, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Next waits for the next issued call
func (g *GatedSearcher) Next(timeout time.Duration) (*PendingSearch, error) {
	select {
	case p := <-g.calls:
		return p, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("no search issued within %s", timeout)
	}
}

// Outstanding reports how many issued calls have not been claimed by Next
func (g *GatedSearcher) Outstanding() int {
	return len(g.calls)
}

// System is a small StarSystem fixture
func System(name string, sectorID, systemID int) trading.StarSystem {
	return trading.StarSystem{
		Name:     name,
		Sector:   "Spinward Marches",
		UWP:      "A788899C",
		SectorID: sectorID,
		SystemID: systemID,
		Zone:     "Green",
	}
}
