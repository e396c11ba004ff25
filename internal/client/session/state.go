// Package session holds the in-memory authentication state. Transitions go
// through the pure Reduce function; Store serializes access to the current
// state for the rest of the client.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

// State is the session snapshot. It is never persisted.
type State struct {
	IsAuthenticated bool
	User            *models.User
	// ID identifies one authenticated stretch for log correlation; empty
	// while anonymous.
	ID string
}

// ActionType names a session transition.
type ActionType string

const (
	SignIn        ActionType = "SIGN_IN"
	SignUp        ActionType = "SIGN_UP"
	UpdateProfile ActionType = "UPDATE_PROFILE"
	SignOut       ActionType = "SIGN_OUT"
)

// Action is a transition request. User is the payload for every type except SignOut.
type Action struct {
	Type ActionType
	User *models.User
}

// Reduce returns the state that follows s after a. It does not mutate s and
// leaves s unchanged for unknown action types.
func Reduce(s State, a Action) State {
	switch a.Type {
	case SignIn, SignUp:
		return State{IsAuthenticated: true, User: a.User.Clone(), ID: uuid.NewString()}
	case UpdateProfile:
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		return State{IsAuthenticated: true, User: a.User.Clone(), ID: id}
	case SignOut:
		return State{}
	default:
		return s
	}
}

// Store owns the current State.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.snapshot()
}

// State returns a copy of the current state; the user is cloned so callers
// can edit it freely.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	st := s.state
	st.User = st.User.Clone()
	return st
}
