package lookup_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/application/lookup"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/test/helpers"
)

const wait = 2 * time.Second

type fixture struct {
	clock    *shared.MockClock
	searcher *helpers.GatedSearcher
	events   chan lookup.Event
	lookup   *lookup.Lookup
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		searcher: helpers.NewGatedSearcher(),
		events:   make(chan lookup.Event, 16),
	}
	f.lookup = lookup.New(context.Background(), f.searcher, f.clock, lookup.Config{
		Listener: func(e lookup.Event) { f.events <- e },
	})
	t.Cleanup(f.lookup.Close)
	return f
}

func (f *fixture) nextEvent(t *testing.T) lookup.Event {
	t.Helper()
	select {
	case e := <-f.events:
		return e
	case <-time.After(wait):
		t.Fatal("no lookup event received")
		return lookup.Event{}
	}
}

func (f *fixture) typeAndSettle(t *testing.T, text string) *helpers.PendingSearch {
	t.Helper()
	f.lookup.SetText(text)
	f.clock.Advance(lookup.DefaultDebounce)
	call, err := f.searcher.Next(wait)
	require.NoError(t, err)
	return call
}

func TestLookup_ShortQueryIssuesNoRequest(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	f.lookup.SetText("Re")
	f.clock.Advance(time.Second)

	// Assert
	assert.Equal(t, 0, f.clock.PendingTimers())
	assert.Equal(t, 0, f.searcher.Outstanding())
	snap := f.lookup.Snapshot()
	assert.Equal(t, lookup.Idle, snap.State)
	assert.Empty(t, snap.Results)
	assert.False(t, snap.Open)
}

func TestLookup_KeystrokesWithinWindowIssueOneRequest(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	for _, text := range []string{"A", "Al", "Alp", "Alph"} {
		f.lookup.SetText(text)
		f.clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, lookup.Pending, f.lookup.Snapshot().State)
	f.clock.Advance(lookup.DefaultDebounce)

	// Assert
	call, err := f.searcher.Next(wait)
	require.NoError(t, err)
	assert.Equal(t, "Alph", call.Query)
	assert.Equal(t, 0, f.searcher.Outstanding())
	assert.Equal(t, lookup.Waiting, f.lookup.Snapshot().State)
}

func TestLookup_AppliesMatchingResponse(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Reg")

	// Act
	call.Resolve(helpers.System("Regina", 1, 1910))
	event := f.nextEvent(t)

	// Assert
	assert.Equal(t, lookup.Applied, event.Kind)
	snap := f.lookup.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "Regina", snap.Results[0].Name)
	assert.True(t, snap.Open)
	assert.Equal(t, lookup.Idle, snap.State)
}

func TestLookup_EmptyResponseKeepsListClosed(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Zzz")

	// Act
	call.Resolve()
	f.nextEvent(t)

	// Assert
	snap := f.lookup.Snapshot()
	assert.NotNil(t, snap.Results)
	assert.Empty(t, snap.Results)
	assert.False(t, snap.Open)
}

func TestLookup_LateResponseForSupersededQueryIsDiscarded(t *testing.T) {
	// Arrange
	f := newFixture(t)
	alp := f.typeAndSettle(t, "Alp")
	alph := f.typeAndSettle(t, "Alph")

	// Act
	alph.Resolve(helpers.System("Alpha Centauri", 2, 101))
	alp.Resolve(helpers.System("Alpine", 2, 102))

	// Assert
	kinds := map[string]lookup.EventKind{}
	for i := 0; i < 2; i++ {
		e := f.nextEvent(t)
		kinds[e.Query] = e.Kind
	}
	assert.Equal(t, lookup.Discarded, kinds["Alp"])
	assert.Equal(t, lookup.Applied, kinds["Alph"])

	snap := f.lookup.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "Alpha Centauri", snap.Results[0].Name)
}

func TestLookup_ErrorEmptiesResultsWithoutRetry(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Reg")

	// Act
	call.Reject(errors.New("HTTP 500"))
	event := f.nextEvent(t)
	f.clock.Advance(10 * time.Second)

	// Assert
	assert.Equal(t, lookup.Failed, event.Kind)
	snap := f.lookup.Snapshot()
	assert.Equal(t, lookup.FetchErrorMessage, snap.Error)
	assert.Empty(t, snap.Results)
	assert.False(t, snap.Open)
	assert.Equal(t, 0, f.searcher.Outstanding())
}

func TestLookup_SelectionSuppressesSearchUntilEdited(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Efa")
	call.Resolve(helpers.System("Efate", 1, 1705), helpers.System("Efare", 1, 1706))
	f.nextEvent(t)

	// Act
	chosen, err := f.lookup.Select(0)
	require.NoError(t, err)
	f.lookup.SetText("Efate")
	f.clock.Advance(time.Second)

	// Assert
	assert.Equal(t, "Efate", chosen.Name)
	snap := f.lookup.Snapshot()
	assert.Equal(t, "Efate", snap.Query)
	assert.False(t, snap.Open)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 1705, snap.Selected.SystemID)
	assert.Equal(t, 0, f.searcher.Outstanding())
}

func TestLookup_EditingAwayFromSelectionClearsIt(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Efa")
	call.Resolve(helpers.System("Efate", 1, 1705))
	f.nextEvent(t)
	_, err := f.lookup.Select(0)
	require.NoError(t, err)

	// Act
	f.lookup.SetText("Efat")

	// Assert
	_, selected := f.lookup.Selected()
	assert.False(t, selected)
	assert.Equal(t, lookup.Pending, f.lookup.Snapshot().State)
}

func TestLookup_DismissKeepsQueryAndSelection(t *testing.T) {
	// Arrange
	f := newFixture(t)
	call := f.typeAndSettle(t, "Reg")
	call.Resolve(helpers.System("Regina", 1, 1910))
	f.nextEvent(t)

	// Act
	f.lookup.Dismiss()

	// Assert
	snap := f.lookup.Snapshot()
	assert.False(t, snap.Open)
	assert.Equal(t, "Reg", snap.Query)
	assert.Len(t, snap.Results, 1)

	f.lookup.Focus()
	assert.True(t, f.lookup.Snapshot().Open)
}

func TestLookup_SelectOutOfRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.lookup.Select(0)

	assert.Error(t, err)
}

func TestLookup_ShorteningBelowMinimumCancelsPendingTimer(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.lookup.SetText("Reg")

	// Act
	f.lookup.SetText("Re")
	f.clock.Advance(time.Second)

	// Assert
	assert.Equal(t, 0, f.searcher.Outstanding())
	assert.Equal(t, lookup.Idle, f.lookup.Snapshot().State)
}

func TestLookup_CloseAbandonsOutstandingRequest(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.typeAndSettle(t, "Reg")

	// Act
	f.lookup.Close()
	event := f.nextEvent(t)

	// Assert
	assert.Equal(t, lookup.Discarded, event.Kind)
	assert.Equal(t, lookup.Idle, f.lookup.Snapshot().State)
}

// lateClock hands out timers whose Stop comes too late: the callback has
// already been scheduled and still runs when the test invokes it
type lateClock struct {
	mu        sync.Mutex
	callbacks []func()
}

type lateTimer struct{}

func (lateTimer) Stop() bool { return false }

func (c *lateClock) Now() time.Time { return time.Time{} }

func (c *lateClock) Sleep(time.Duration) {}

func (c *lateClock) AfterFunc(_ time.Duration, f func()) shared.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, f)
	return lateTimer{}
}

func (c *lateClock) callback(i int) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callbacks[i]
}

func TestLookup_StoppedTimerCallbackIsIgnored(t *testing.T) {
	// Arrange
	clock := &lateClock{}
	searcher := helpers.NewGatedSearcher()
	l := lookup.New(context.Background(), searcher, clock, lookup.Config{})
	t.Cleanup(l.Close)

	l.SetText("Alp")
	l.SetText("Alph")
	l.SetText("Alp")

	// Act
	clock.callback(0)()
	clock.callback(1)()

	// Assert
	assert.Equal(t, lookup.Pending, l.Snapshot().State, "stale callbacks must not start a request")
	_, err := searcher.Next(50 * time.Millisecond)
	assert.Error(t, err)

	clock.callback(2)()
	call, err := searcher.Next(wait)
	require.NoError(t, err)
	assert.Equal(t, "Alp", call.Query)
	assert.Equal(t, lookup.Waiting, l.Snapshot().State)
}
