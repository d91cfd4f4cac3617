package list

import (
	"context"
	"log"
	"sync"
	"time"
)

const eventBuffer = 64

// Options configures a Store. Zero durations fall back to the defaults.
type Options struct {
	SearchDebounce time.Duration
	RetryCooldown  time.Duration
	Logger         *log.Logger
}

// Store runs the reducer on a single goroutine and executes its effects.
// Readers get deep-copied snapshots; they never see the loop's working state.
type Store struct {
	fetcher Fetcher
	timing  Timing
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	done   chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
	started   bool
	fetches   sync.WaitGroup

	// Owned by the loop goroutine.
	state  State
	timers map[Timer]*time.Timer

	mu       sync.RWMutex
	snapshot State
	subs     map[int]chan State
	nextSub  int
	closed   bool
}

// NewStore returns a Store in the mount state. Call Start to begin processing.
func NewStore(fetcher Fetcher, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	initial := NewState()
	return &Store{
		fetcher:  fetcher,
		timing:   Timing{SearchDebounce: opts.SearchDebounce, RetryCooldown: opts.RetryCooldown}.withDefaults(),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, eventBuffer),
		done:     make(chan struct{}),
		state:    initial,
		timers:   make(map[Timer]*time.Timer),
		snapshot: initial,
		subs:     make(map[int]chan State),
	}
}

// Start launches the event loop. The store closes itself when ctx ends.
// Calling Start more than once has no effect.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.mu.Lock()
		s.started = true
		s.mu.Unlock()
		stop := context.AfterFunc(ctx, s.cancel)
		go func() {
			defer stop()
			s.run()
		}()
	})
}

// Dispatch submits an intent. Intents sent after Close are dropped.
func (s *Store) Dispatch(intent Intent) {
	s.post(intent)
}

// Snapshot returns a copy of the latest published state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.clone()
}

// Subscribe returns a channel that always holds the newest state. A slow
// reader only ever misses intermediate states. The channel is closed by the
// returned cancel func or by Close.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshot.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close cancels in-flight fetches, stops timers and closes subscriber
// channels. It blocks until the loop and every fetch goroutine have exited.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.mu.RLock()
		started := s.started
		s.mu.RUnlock()
		if started {
			<-s.done
		} else {
			s.teardown()
		}
		s.fetches.Wait()
	})
}

func (s *Store) post(ev Event) {
	if s.ctx.Err() != nil {
		return
	}
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *Store) run() {
	defer close(s.done)
	defer s.teardown()
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

func (s *Store) apply(ev Event) {
	next, effects := s.timing.Reduce(s.state, ev)
	s.state = next
	s.publish(next)
	for _, eff := range effects {
		s.execute(eff)
	}
}

func (s *Store) execute(eff Effect) {
	switch eff := eff.(type) {
	case Fetch:
		s.fetches.Add(1)
		go func() {
			defer s.fetches.Done()
			s.post(eff.run(s.ctx, s.fetcher))
		}()
	case Schedule:
		if prev, ok := s.timers[eff.Timer]; ok {
			prev.Stop()
		}
		ev := eff.Event()
		s.timers[eff.Timer] = time.AfterFunc(eff.After, func() { s.post(ev) })
	case Note:
		s.logger.Printf("list: %s", eff.Text)
	}
}

func (s *Store) publish(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = state.clone()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state.clone():
		default:
		}
	}
}

func (s *Store) teardown() {
	for kind, timer := range s.timers {
		timer.Stop()
		delete(s.timers, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
