package manager

import (
	"fmt"
	"sync"
	"time"

	"profanityd/pkg/types"
)

// Slot holds the lifecycle state and handle for one named model. All state
// transitions go through BeginLoad, CompleteLoad and FailLoad; the lock is
// only held for the transition itself, never across a load.
type Slot struct {
	model types.Model

	mu              sync.RWMutex
	state           State
	session         Session
	lastErr         string
	hasErr          bool
	attempts        uint64
	attemptID       string
	loadStartedAt   time.Time
	loadCompletedAt time.Time

	// orphaned is set while a timed-out loader is still running.
	orphaned bool
	// inflight counts scorer calls holding the session; idle is signaled
	// when it drops to zero. draining refuses new holders.
	inflight int
	draining bool
	idle     *sync.Cond
}

func newSlot(mdl types.Model) *Slot {
	s := &Slot{model: mdl, state: StateNotLoaded}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Name returns the slot's stable name.
func (s *Slot) Name() string { return s.model.ID }

// Model returns the model descriptor backing this slot.
func (s *Slot) Model() types.Model { return s.model }

// TrySnapshot returns a consistent copy of the slot state without side effects.
func (s *Slot) TrySnapshot() SlotSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := SlotSnapshot{
		Name:            s.model.ID,
		Path:            s.model.Path,
		State:           s.state,
		LastError:       s.lastErr,
		HasError:        s.hasErr,
		Attempts:        s.attempts,
		AttemptID:       s.attemptID,
		LoadStartedAt:   s.loadStartedAt,
		LoadCompletedAt: s.loadCompletedAt,
	}
	if s.session != nil {
		snap.Device = s.session.Device()
	}
	return snap
}

// BeginLoad moves NotLoaded or Failed to Loading. It reports whether the caller
// won the right to perform the load; exactly one concurrent caller wins. A
// Failed slot whose timed-out loader has not returned yet is not reloaded.
func (s *Slot) BeginLoad(attemptID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading || s.state == StateLoaded || s.orphaned || s.draining {
		return false
	}
	s.transition(StateLoading)
	s.lastErr = ""
	s.hasErr = false
	s.attempts++
	s.attemptID = attemptID
	s.loadStartedAt = time.Now()
	return true
}

// CompleteLoad installs the loaded handle and moves Loading to Loaded. Once
// the slot is draining the handle is refused: the slot moves to Failed and
// CompleteLoad returns false, leaving the caller to close sess.
func (s *Slot) CompleteLoad(sess Session) bool {
	if sess == nil {
		panic(fmt.Sprintf("slot %q: CompleteLoad with nil session", s.model.ID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draining {
		s.transition(StateFailed)
		s.lastErr = shuttingDownError{}.Error()
		s.hasErr = true
		return false
	}
	s.transition(StateLoaded)
	s.session = sess
	s.lastErr = ""
	s.hasErr = false
	s.loadCompletedAt = time.Now()
	return true
}

// FailLoad records msg and moves Loading to Failed.
func (s *Slot) FailLoad(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(StateFailed)
	s.session = nil
	s.lastErr = msg
	s.hasErr = true
}

// acquireSession returns the handle of a Loaded slot and counts the caller as
// in flight until release is called. It fails once the slot is draining.
func (s *Slot) acquireSession() (sess Session, release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded || s.session == nil || s.draining {
		return nil, nil, false
	}
	s.inflight++
	var once sync.Once
	return s.session, func() { once.Do(s.releaseSession) }, true
}

func (s *Slot) releaseSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		s.idle.Broadcast()
	}
}

// drain refuses new session holders, waits for in-flight ones to release and
// returns the handle of a Loaded slot for the caller to close.
func (s *Slot) drain() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draining = true
	for s.inflight > 0 {
		s.idle.Wait()
	}
	if s.state != StateLoaded || s.session == nil {
		return nil, false
	}
	return s.session, true
}

func (s *Slot) markOrphaned() {
	s.mu.Lock()
	s.orphaned = true
	s.mu.Unlock()
}

func (s *Slot) orphanDone() {
	s.mu.Lock()
	s.orphaned = false
	s.mu.Unlock()
}

// currentState returns the state without copying the rest of the slot.
func (s *Slot) currentState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// transition must be called with s.mu held. Illegal transitions are bugs.
func (s *Slot) transition(to State) {
	if !canTransition(s.state, to) {
		panic(fmt.Sprintf("slot %q: illegal transition %s -> %s", s.model.ID, s.state, to))
	}
	s.state = to
}
