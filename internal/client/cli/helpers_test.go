package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/weatherface/internal/client/config"
	"github.com/dmitrijs2005/weatherface/internal/client/credentials"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/roster"
	"github.com/dmitrijs2005/weatherface/internal/client/services"
	"github.com/dmitrijs2005/weatherface/internal/client/session"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// plainPasswords makes GetPassword read from the line reader.
func plainPasswords(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

// memStore is an in-memory services.RecordStore.
type memStore struct {
	mu      sync.Mutex
	user    *models.User
	saveErr error
}

func (m *memStore) Save(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
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

type fakeFetcher struct {
	cities []string
	view   services.WeatherView
}

func (f *fakeFetcher) Fetch(_ context.Context, city string) services.WeatherView {
	f.cities = append(f.cities, city)
	return f.view
}

func newTestApp(t *testing.T, store *memStore, wf weatherFetcher, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	plainPasswords(t)

	var out bytes.Buffer
	if wf == nil {
		wf = &fakeFetcher{}
	}
	return &App{
		config:  &config.Config{Units: "metric"},
		log:     logging.Nop(),
		auth:    services.NewAuthService(store, credentials.NewHasher(bcrypt.MinCost), session.NewStore(), logging.Nop()),
		weather: wf,
		roster:  roster.NewEditor(nil),
		reader:  readerFromLines(lines...),
		out:     &out,
	}, &out
}

var signUpLines = []string{
	"john@example.com",
	"12345678",
	"12345678",
	"+420777123456",
	"Prague, 110 00",
	"",
}
