// Package routing derives the visible screen group from identity and
// pairing state. It is fed by the owner of the auth-state and user-record
// subscriptions and holds no backend dependency of its own.
package routing

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/model"
)

// State is the resolved screen group.
type State int

const (
	// StateLoading covers startup and the window between sign-in and the
	// first user snapshot.
	StateLoading State = iota
	// StateUnauthenticated selects the login/register group.
	StateUnauthenticated
	// StateAuthenticatedUnpaired selects the pairing screen.
	StateAuthenticatedUnpaired
	// StateAuthenticatedPaired selects the dashboard/projects group.
	StateAuthenticatedPaired
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedUnpaired:
		return "authenticated_unpaired"
	case StateAuthenticatedPaired:
		return "authenticated_paired"
	default:
		return "unknown"
	}
}

// Machine resolves routing state from auth-session events and user-record
// snapshots. Safe for concurrent use.
type Machine struct {
	mu sync.Mutex

	authKnown bool
	userID    *uuid.UUID

	snapKnown bool
	paired    bool

	epoch    int
	onChange func(State)
}

// New creates a Machine in the loading state.
func New() *Machine {
	return &Machine{}
}

// OnChange registers a callback fired whenever the resolved state changes.
// The callback runs synchronously on the event that caused the change and
// must not call back into the machine.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// SetAuthState feeds an identity-session change. A nil userID means
// signed out, which wins over everything else; a new userID invalidates
// any snapshot observed for the previous user.
func (m *Machine) SetAuthState(userID *uuid.UUID) {
	m.mu.Lock()
	before := m.resolve()

	m.authKnown = true
	switch {
	case userID == nil:
		m.userID = nil
		m.snapKnown = false
		m.paired = false
	case m.userID == nil || *m.userID != *userID:
		id := *userID
		m.userID = &id
		m.snapKnown = false
		m.paired = false
	}

	m.finish(before)
}

// SetUserSnapshot feeds a user-record snapshot or subscription error.
// A snapshot error is treated as "not paired" rather than fatal, so the
// caller is never stuck loading. Snapshots arriving while signed out are
// dropped as stale.
func (m *Machine) SetUserSnapshot(snap *model.UserSnapshot, err error) {
	m.mu.Lock()
	before := m.resolve()

	if m.userID == nil {
		m.mu.Unlock()
		return
	}

	m.snapKnown = true
	m.paired = err == nil && snap != nil && snap.PairedWithUID != nil

	m.finish(before)
}

// State returns the currently resolved state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolve()
}

// Epoch returns the authenticated-branch generation. It increments every
// time the resolved state switches between the paired and unpaired
// branches, signalling consumers to discard in-branch navigation state.
func (m *Machine) Epoch() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func (m *Machine) resolve() State {
	switch {
	case !m.authKnown:
		return StateLoading
	case m.userID == nil:
		return StateUnauthenticated
	case !m.snapKnown:
		return StateLoading
	case m.paired:
		return StateAuthenticatedPaired
	default:
		return StateAuthenticatedUnpaired
	}
}

// finish compares the resolved state against before, bumps the branch
// epoch when the authenticated branch flips, unlocks and notifies.
// Callers must hold m.mu.
func (m *Machine) finish(before State) {
	after := m.resolve()
	if after != before && (after == StateAuthenticatedPaired || after == StateAuthenticatedUnpaired) {
		m.epoch++
	}
	fn := m.onChange
	m.mu.Unlock()

	if after != before && fn != nil {
		fn(after)
	}
}
