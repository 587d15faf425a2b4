package lookup

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/andrescamacho/traveller-go/internal/application/logging"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-go/internal/domain/trading"
)

const (
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMinQueryLength = 3

	// FetchErrorMessage is shown when a search request fails
	FetchErrorMessage = "Failed to fetch star systems."
)

// State is the lookup's position in its request cycle
type State int

const (
	// Idle has no timer armed and no request outstanding
	Idle State = iota
	// Pending has a debounce timer armed
	Pending
	// Waiting has a request outstanding
	Waiting
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Waiting:
		return "waiting"
	default:
		return "idle"
	}
}

// EventKind says what happened to a search response
type EventKind int

const (
	// Applied means the response replaced the result set
	Applied EventKind = iota
	// Discarded means the response was stale and ignored
	Discarded
	// Failed means the request errored and the result set was emptied
	Failed
)

// Event reports the fate of one search response
type Event struct {
	Kind    EventKind
	Query   string
	Results []trading.StarSystem
	Err     error
}

// Snapshot is the visible lookup state
type Snapshot struct {
	Query    string
	Results  []trading.StarSystem
	Open     bool
	Selected *trading.StarSystem
	Error    string
	State    State
}

// Config tunes a Lookup. Zero values use the defaults.
type Config struct {
	Debounce       time.Duration
	MinQueryLength int
	// Listener, when set, is called after every search response is handled,
	// from the goroutine that received it
	Listener func(Event)
}

// Lookup turns type-ahead text into star system candidates. Keystrokes are
// debounced, and a response is applied only while its query is still the
// current text.
type Lookup struct {
	searcher  ports.SystemSearcher
	clock     shared.Clock
	debounce  time.Duration
	minLength int
	listener  func(Event)
	logger    logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	query         string
	results       []trading.StarSystem
	open          bool
	selected      *trading.StarSystem
	errMsg        string
	state         State
	timer         shared.Timer
	armed         uint64 // bumped whenever the timer is disarmed
	cancelRequest context.CancelFunc
	closed        bool
}

// New creates a lookup. Requests run under ctx until Close.
func New(ctx context.Context, searcher ports.SystemSearcher, clock shared.Clock, cfg Config) *Lookup {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	lctx, cancel := context.WithCancel(ctx)
	return &Lookup{
		searcher:  searcher,
		clock:     clock,
		debounce:  cfg.Debounce,
		minLength: cfg.MinQueryLength,
		listener:  cfg.Listener,
		logger:    logging.LoggerFromContext(ctx),
		ctx:       lctx,
		cancel:    cancel,
	}
}

// SetText feeds the current input text
func (l *Lookup) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || text == l.query {
		return
	}
	l.query = text

	if l.selected != nil {
		if text == l.selected.Name {
			return
		}
		l.selected = nil
	}

	l.stopLocked()
	l.errMsg = ""

	if utf8.RuneCountInString(text) < l.minLength {
		l.results = nil
		l.open = false
		return
	}

	l.state = Pending
	seq := l.armed
	l.timer = l.clock.AfterFunc(l.debounce, func() { l.fire(seq, text) })
}

// stopLocked disarms the timer and abandons any outstanding request
func (l *Lookup) stopLocked() {
	l.armed++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancelRequest != nil {
		l.cancelRequest()
		l.cancelRequest = nil
	}
	l.state = Idle
}

// fire runs when the debounce timer armed as seq elapses. A callback whose
// timer was stopped after it was already scheduled finds seq out of date.
func (l *Lookup) fire(seq uint64, tag string) {
	l.mu.Lock()
	if l.closed || seq != l.armed || l.state != Pending || tag != l.query || l.selected != nil {
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(l.ctx)
	l.timer = nil
	l.cancelRequest = cancel
	l.state = Waiting
	l.mu.Unlock()

	go l.fetch(ctx, cancel, tag)
}

func (l *Lookup) fetch(ctx context.Context, cancel context.CancelFunc, tag string) {
	defer cancel()

	systems, err := l.searcher.SystemsByName(ctx, tag)

	l.mu.Lock()
	var event Event
	switch {
	case l.closed || ctx.Err() != nil || tag != l.query || l.selected != nil:
		// superseded: the text moved on, or this request was abandoned
		event = Event{Kind: Discarded, Query: tag}
	case err != nil:
		l.results = nil
		l.open = false
		l.errMsg = FetchErrorMessage
		l.state = Idle
		l.cancelRequest = nil
		event = Event{Kind: Failed, Query: tag, Err: err}
	default:
		if systems == nil {
			systems = []trading.StarSystem{}
		}
		l.results = systems
		l.open = len(systems) > 0
		l.state = Idle
		l.cancelRequest = nil
		event = Event{Kind: Applied, Query: tag, Results: systems}
	}
	l.mu.Unlock()

	if event.Kind == Failed {
		l.logger.Log(logging.LevelError, "System search failed", map[string]interface{}{
			"query": tag,
			"error": err.Error(),
		})
	}
	if l.listener != nil {
		l.listener(event)
	}
}

// Select fixes the selection to result index i and closes the list
func (l *Lookup) Select(i int) (trading.StarSystem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.results) {
		return trading.StarSystem{}, fmt.Errorf("no result %d", i+1)
	}
	chosen := l.results[i]
	l.stopLocked()
	l.selected = &chosen
	l.query = chosen.Name
	l.open = false
	return chosen, nil
}

// Dismiss closes the result list, keeping the query and selection
func (l *Lookup) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = false
}

// Focus reopens the list when results are held and nothing is selected
func (l *Lookup) Focus() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil && len(l.results) > 0 {
		l.open = true
	}
}

// Selected returns the current selection, if any
func (l *Lookup) Selected() (trading.StarSystem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return trading.StarSystem{}, false
	}
	return *l.selected, true
}

// Snapshot returns a copy of the visible state
func (l *Lookup) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Snapshot{
		Query: l.query,
		Open:  l.open,
		Error: l.errMsg,
		State: l.state,
	}
	if l.results != nil {
		s.Results = append([]trading.StarSystem(nil), l.results...)
	}
	if l.selected != nil {
		chosen := *l.selected
		s.Selected = &chosen
	}
	return s
}

// Close stops the timer and cancels any outstanding request
func (l *Lookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.stopLocked()
	l.closed = true
	l.cancel()
}
