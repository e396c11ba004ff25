package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

func user(email string) *models.User {
	return &models.User{Email: email, Cities: []models.City{models.NewCity("Prague", 11000)}}
}

func TestReduce_Transitions(t *testing.T) {
	anon := State{}

	for _, typ := range []ActionType{SignIn, SignUp, UpdateProfile} {
		t.Run(string(typ), func(t *testing.T) {
			next := Reduce(anon, Action{Type: typ, User: user("john@example.com")})
			assert.True(t, next.IsAuthenticated)
			require.NotNil(t, next.User)
			assert.Equal(t, "john@example.com", next.User.Email)
			assert.NotEmpty(t, next.ID)
			assert.False(t, anon.IsAuthenticated, "input state must not be mutated")
		})
	}

	t.Run("SIGN_OUT", func(t *testing.T) {
		in := Reduce(anon, Action{Type: SignIn, User: user("john@example.com")})
		out := Reduce(in, Action{Type: SignOut})
		assert.Equal(t, State{}, out)
		assert.True(t, in.IsAuthenticated)
	})
}

func TestReduce_UpdateProfileKeepsSessionID(t *testing.T) {
	in := Reduce(State{}, Action{Type: SignIn, User: user("john@example.com")})
	out := Reduce(in, Action{Type: UpdateProfile, User: user("jane@example.com")})

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, "jane@example.com", out.User.Email)
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	in := Reduce(State{}, Action{Type: SignIn, User: user("john@example.com")})
	out := Reduce(in, Action{Type: "REFRESH"})
	assert.Equal(t, in, out)
}

func TestReduce_PayloadIsCopied(t *testing.T) {
	u := user("john@example.com")
	st := Reduce(State{}, Action{Type: SignUp, User: u})

	u.Cities[0].Name = "Brno"
	assert.Equal(t, "Prague", st.User.Cities[0].Name)
}

func TestStore_DispatchAndSnapshot(t *testing.T) {
	s := NewStore()
	assert.False(t, s.State().IsAuthenticated)

	s.Dispatch(Action{Type: SignIn, User: user("john@example.com")})

	snap := s.State()
	require.True(t, snap.IsAuthenticated)
	snap.User.Email = "changed@example.com"
	assert.Equal(t, "john@example.com", s.State().User.Email)

	s.Dispatch(Action{Type: SignOut})
	assert.False(t, s.State().IsAuthenticated)
	assert.Nil(t, s.State().User)
}
