package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/traveller-go/internal/application/lookup"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

type lookupContext struct {
	clock    *shared.MockClock
	searcher *helpers.GatedSearcher
	lookup   *lookup.Lookup
	pending  map[string]*helpers.PendingSearch

	mu     sync.Mutex
	events []lookup.Event
}

func (ctx *lookupContext) reset() {
	ctx.close()
	ctx.clock = shared.NewMockClock(time.Time{})
	ctx.searcher = helpers.NewGatedSearcher()
	ctx.pending = make(map[string]*helpers.PendingSearch)
	ctx.mu.Lock()
	ctx.events = nil
	ctx.mu.Unlock()
}

func (ctx *lookupContext) close() {
	if ctx.lookup != nil {
		ctx.lookup.Close()
		ctx.lookup = nil
	}
}

func (ctx *lookupContext) record(e lookup.Event) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.events = append(ctx.events, e)
}

// waitForEvent blocks until a response for query has been handled
func (ctx *lookupContext) waitForEvent(query string) (lookup.Event, error) {
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		ctx.mu.Lock()
		for _, e := range ctx.events {
			if e.Query == query {
				ctx.mu.Unlock()
				return e, nil
			}
		}
		ctx.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	return lookup.Event{}, fmt.Errorf("no response for %q was handled", query)
}

// pendingFor returns the outstanding search call for query
func (ctx *lookupContext) pendingFor(query string) (*helpers.PendingSearch, error) {
	if p, ok := ctx.pending[query]; ok {
		return p, nil
	}
	for {
		p, err := ctx.searcher.Next(waitTimeout)
		if err != nil {
			return nil, fmt.Errorf("waiting for a search for %q: %w", query, err)
		}
		ctx.pending[p.Query] = p
		if p.Query == query {
			return p, nil
		}
	}
}

func systemsNamed(names string) []trading.StarSystem {
	var systems []trading.StarSystem
	for i, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			systems = append(systems, helpers.System(name, 3, 1700+i))
		}
	}
	return systems
}

func (ctx *lookupContext) aDestinationLookupWith(debounce, minLength int) error {
	ctx.lookup = lookup.New(context.Background(), ctx.searcher, ctx.clock, lookup.Config{
		Debounce:       time.Duration(debounce) * time.Millisecond,
		MinQueryLength: minLength,
		Listener:       ctx.record,
	})
	return nil
}

func (ctx *lookupContext) iType(text string) error {
	ctx.lookup.SetText(text)
	return nil
}

func (ctx *lookupContext) millisecondsPass(ms int) error {
	ctx.clock.Advance(time.Duration(ms) * time.Millisecond)
	return nil
}

func (ctx *lookupContext) noSearchShouldHaveBeenIssued() error {
	if n := ctx.searcher.Outstanding(); n != 0 {
		return fmt.Errorf("expected no search but %d were issued", n)
	}
	if state := ctx.lookup.Snapshot().State; state == lookup.Waiting {
		return fmt.Errorf("expected no outstanding request, lookup is %s", state)
	}
	return nil
}

func (ctx *lookupContext) aSearchForShouldBeIssued(query string) error {
	p, err := ctx.searcher.Next(waitTimeout)
	if err != nil {
		return err
	}
	ctx.pending[p.Query] = p
	if p.Query != query {
		return fmt.Errorf("expected a search for %q but got %q", query, p.Query)
	}
	return nil
}

func (ctx *lookupContext) theSearchForReturns(query, names string) error {
	p, err := ctx.pendingFor(query)
	if err != nil {
		return err
	}
	p.Resolve(systemsNamed(names)...)
	_, err = ctx.waitForEvent(query)
	return err
}

func (ctx *lookupContext) theSearchForFails(query string) error {
	p, err := ctx.pendingFor(query)
	if err != nil {
		return err
	}
	p.Reject(errors.New("503 Service Unavailable"))
	_, err = ctx.waitForEvent(query)
	return err
}

func (ctx *lookupContext) theSearchForShouldBeDiscarded(query string) error {
	e, err := ctx.waitForEvent(query)
	if err != nil {
		return err
	}
	if e.Kind != lookup.Discarded {
		return fmt.Errorf("expected the response for %q to be discarded, got kind %d", query, e.Kind)
	}
	return nil
}

func (ctx *lookupContext) theLookupShouldShow(names string) error {
	snap := ctx.lookup.Snapshot()
	shown := make([]string, len(snap.Results))
	for i, s := range snap.Results {
		shown[i] = s.Name
	}
	if actual := strings.Join(shown, ", "); actual != names {
		return fmt.Errorf("expected results %q but got %q", names, actual)
	}
	return nil
}

func (ctx *lookupContext) theLookupErrorShouldBe(message string) error {
	if actual := ctx.lookup.Snapshot().Error; actual != message {
		return fmt.Errorf("expected error %q but got %q", message, actual)
	}
	return nil
}

func (ctx *lookupContext) theLookupShouldBe(state string) error {
	if actual := ctx.lookup.Snapshot().State.String(); actual != state {
		return fmt.Errorf("expected lookup to be %s but it is %s", state, actual)
	}
	return nil
}

func (ctx *lookupContext) theResultListShouldBe(status string) error {
	if open := ctx.lookup.Snapshot().Open; open != (status == "open") {
		return fmt.Errorf("expected the result list to be %s", status)
	}
	return nil
}

func (ctx *lookupContext) iSelectResult(n int) error {
	_, err := ctx.lookup.Select(n - 1)
	return err
}

func (ctx *lookupContext) theSelectionShouldBe(name string) error {
	selected, ok := ctx.lookup.Selected()
	if !ok {
		return fmt.Errorf("expected %q to be selected, nothing is", name)
	}
	if selected.Name != name {
		return fmt.Errorf("expected %q to be selected but got %q", name, selected.Name)
	}
	return nil
}

func (ctx *lookupContext) iDismissTheResultList() error {
	ctx.lookup.Dismiss()
	return nil
}

func (ctx *lookupContext) iFocusTheLookup() error {
	ctx.lookup.Focus()
	return nil
}

// InitializeLookupScenario registers destination lookup step definitions
func InitializeLookupScenario(sc *godog.ScenarioContext) {
	ctx := &lookupContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})
	sc.After(func(c context.Context, s *godog.Scenario, err error) (context.Context, error) {
		ctx.close()
		return c, nil
	})

	sc.Step(`^a destination lookup with a (\d+)ms debounce and a (\d+) character minimum$`, ctx.aDestinationLookupWith)
	sc.Step(`^I type "([^"]*)"$`, ctx.iType)
	sc.Step(`^(\d+)ms pass(?:es)?$`, ctx.millisecondsPass)
	sc.Step(`^no search should have been issued$`, ctx.noSearchShouldHaveBeenIssued)
	sc.Step(`^a search for "([^"]*)" should be issued$`, ctx.aSearchForShouldBeIssued)
	sc.Step(`^the search for "([^"]*)" returns "([^"]*)"$`, ctx.theSearchForReturns)
	sc.Step(`^the search for "([^"]*)" fails$`, ctx.theSearchForFails)
	sc.Step(`^the search for "([^"]*)" should be discarded$`, ctx.theSearchForShouldBeDiscarded)
	sc.Step(`^the lookup should show "([^"]*)"$`, ctx.theLookupShouldShow)
	sc.Step(`^the lookup error should be "([^"]*)"$`, ctx.theLookupErrorShouldBe)
	sc.Step(`^the lookup should be "([^"]*)"$`, ctx.theLookupShouldBe)
	sc.Step(`^the result list should be (open|closed)$`, ctx.theResultListShouldBe)
	sc.Step(`^I select result (\d+)$`, ctx.iSelectResult)
	sc.Step(`^the selection should be "([^"]*)"$`, ctx.theSelectionShouldBe)
	sc.Step(`^I dismiss the result list$`, ctx.iDismissTheResultList)
	sc.Step(`^I focus the lookup$`, ctx.iFocusTheLookup)
}
