package list

import "time"

// Effect describes work the reducer wants done. The Store executes effects;
// Reduce itself never blocks or starts goroutines.
type Effect interface {
	isEffect()
}

// FetchKind selects which collaborator call a Fetch performs.
type FetchKind int

const (
	FetchInitial FetchKind = iota
	FetchNext
	FetchSearch
)

func (k FetchKind) String() string {
	switch k {
	case FetchNext:
		return "next"
	case FetchSearch:
		return "search"
	default:
		return "initial"
	}
}

// Fetch asks for one page. The result comes back as InitialLoaded,
// PageLoaded or SearchLoaded depending on Kind.
type Fetch struct {
	Kind  FetchKind
	Mode  Mode
	Page  int
	Query string
	Seq   uint64
	Gen   uint64
}

// Timer names a one-shot timer slot. A slot holds at most one live timer.
type Timer int

const (
	TimerCooldown Timer = iota
	TimerDebounce
)

func (t Timer) String() string {
	if t == TimerDebounce {
		return "debounce"
	}
	return "cooldown"
}

// Schedule arms the Timer slot to deliver its elapsed event after After.
type Schedule struct {
	Timer Timer
	After time.Duration
	Seq   uint64
}

// Event returns the event the timer delivers when it fires.
func (s Schedule) Event() Event {
	if s.Timer == TimerDebounce {
		return DebounceElapsed{Seq: s.Seq}
	}
	return CooldownElapsed{Seq: s.Seq}
}

// Note is a diagnostic line for the store's logger.
type Note struct {
	Text string
}

func (Fetch) isEffect()    {}
func (Schedule) isEffect() {}
func (Note) isEffect()     {}
