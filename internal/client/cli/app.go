package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/weatherface/internal/client/client"
	"github.com/dmitrijs2005/weatherface/internal/client/config"
	"github.com/dmitrijs2005/weatherface/internal/client/credentials"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/roster"
	"github.com/dmitrijs2005/weatherface/internal/client/services"
	"github.com/dmitrijs2005/weatherface/internal/client/session"
	"github.com/dmitrijs2005/weatherface/internal/client/vault"
	"github.com/dmitrijs2005/weatherface/internal/common"
	"github.com/dmitrijs2005/weatherface/internal/cryptox"
	"github.com/dmitrijs2005/weatherface/internal/filex"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

// authService is the part of services.AuthService the CLI drives.
type authService interface {
	State() session.State
	SignUp(ctx context.Context, form models.SignUpForm) (session.State, error)
	SignIn(ctx context.Context, form models.SignInForm) (session.State, error)
	UpdateProfile(ctx context.Context, u *models.User) (session.State, error)
	SignOut(ctx context.Context) error
}

type weatherFetcher interface {
	Fetch(ctx context.Context, city string) services.WeatherView
}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    authService
	weather weatherFetcher
	roster  *roster.Editor
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local store described by c and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	secret, err := filex.LoadOrCreateSecret(c.KeyFilePath, cryptox.KeySize)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("device secret: %w", err)
	}
	defer common.WipeByteArray(secret)

	store, err := vault.Open(ctx, db, secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(store, credentials.NewHasher(c.HashCost), session.NewStore(), log)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		auth:    as,
		weather: newWeatherFetcher(c, log),
		roster:  roster.NewEditor(nil),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func newWeatherFetcher(c *config.Config, log logging.Logger) *services.WeatherFetcher {
	wc := client.NewHTTPWeatherClient(c.WeatherAPIURL, c.WeatherAPIKey,
		client.WithUnits(c.Units),
		client.WithTimeout(c.RequestTimeout),
	)
	return services.NewWeatherFetcher(wc, log)
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to WeatherFace (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.auth.State()
	if !st.IsAuthenticated || st.User == nil {
		return ""
	}
	s := st.User.Email
	if c, ok := a.roster.Selected(); ok {
		s = fmt.Sprintf("%s @ %s", s, c.Name)
	}
	return fmt.Sprintf("(%s) ", s)
}

func (a *App) units() string {
	if a.config == nil {
		return "metric"
	}
	return a.config.Units
}
