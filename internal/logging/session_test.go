package logging_test

import (
	"bytes"
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/weatherface/internal/client/credentials"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/services"
	"github.com/dmitrijs2005/weatherface/internal/client/session"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

type memStore struct {
	mu   sync.Mutex
	user *models.User
}

func (m *memStore) Save(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u.Clone()
	return nil
}

func (m *memStore) Load(context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.Clone(), nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

// Every account event logged by the auth service carries the session id, on
// both backends.
func TestAuthService_LogsSessionID(t *testing.T) {
	for _, backend := range []string{logging.BackendSlog, logging.BackendZap} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logging.New(backend, "info", &buf)
			require.NoError(t, err)

			auth := services.NewAuthService(&memStore{}, credentials.NewHasher(bcrypt.MinCost), session.NewStore(), log)
			ctx := context.Background()

			st, err := auth.SignUp(ctx, models.SignUpForm{
				Email:           "john@example.com",
				Password:        "12345678",
				ConfirmPassword: "12345678",
				PhoneNumber:     "+420777123456",
				Cities:          []models.City{models.NewCity("Prague", 11000)},
			})
			require.NoError(t, err)
			require.NotEmpty(t, st.ID)
			require.NoError(t, auth.SignOut(ctx))

			out := buf.String()
			assert.Contains(t, out, "signed up")
			assert.Contains(t, out, "signed out")
			assert.Len(t, regexp.MustCompile(regexp.QuoteMeta(st.ID)).FindAllString(out, -1), 2)
			assert.NotContains(t, out, "$2a$", "password hash must not be logged")
		})
	}
}
