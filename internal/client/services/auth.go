// Package services contains the client's application services. This file
// defines the authentication service: sign-up, sign-in, profile update and
// sign-out on top of the vault, the password hasher and the session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/session"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

var (
	// ErrInvalidCredentials is returned by SignIn when the email or password
	// does not match the stored account.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoAccount is returned by SignIn when no account was ever created on
	// this device, or it was removed by a sign-out.
	ErrNoAccount = errors.New("no account on this device, sign up first")
	// ErrNotAuthenticated guards operations that need a signed-in user.
	ErrNotAuthenticated = errors.New("not signed in")
)

// RecordStore persists the single user record.
type RecordStore interface {
	Save(ctx context.Context, u *models.User) error
	Load(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, hash string) bool
}

// AuthService drives session transitions. Storage writes always finish
// before the matching session action is dispatched, so the session never
// runs ahead of what is on disk.
type AuthService struct {
	store    RecordStore
	hasher   PasswordHasher
	sessions *session.Store
	log      logging.Logger
}

// NewAuthService wires an AuthService.
func NewAuthService(store RecordStore, hasher PasswordHasher, sessions *session.Store, log logging.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, sessions: sessions, log: log}
}

// State returns the current session snapshot.
func (a *AuthService) State() session.State {
	return a.sessions.State()
}

// SignUp validates form, hashes the password, stores the new user (replacing
// any account already on the device) and signs it in.
func (a *AuthService) SignUp(ctx context.Context, form models.SignUpForm) (session.State, error) {
	if err := form.Validate(); err != nil {
		return a.State(), err
	}

	hash, err := a.hasher.Hash([]byte(form.Password))
	if err != nil {
		a.log.Error(ctx, "password hashing failed", "error", err)
		return a.State(), err
	}

	existing, err := a.store.Load(ctx)
	if err == nil && existing != nil {
		a.log.Warn(ctx, "replacing existing account", "previous", existing.Email)
	}

	u := &models.User{
		Email:        strings.TrimSpace(form.Email),
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(form.PhoneNumber),
		Cities:       append([]models.City(nil), form.Cities...),
	}
	if u.Cities == nil {
		u.Cities = []models.City{}
	}

	if err := a.store.Save(ctx, u); err != nil {
		return a.State(), fmt.Errorf("saving account: %w", err)
	}

	st := a.sessions.Dispatch(session.Action{Type: session.SignUp, User: u})
	a.log.With("session", st.ID).Info(ctx, "signed up", "email", u.Email, "cities", len(u.Cities))
	return st, nil
}

// SignIn checks form against the stored account. On mismatch the session is
// left untouched and ErrInvalidCredentials is returned.
func (a *AuthService) SignIn(ctx context.Context, form models.SignInForm) (session.State, error) {
	if err := form.Validate(); err != nil {
		return a.State(), err
	}

	u, err := a.store.Load(ctx)
	if err != nil {
		return a.State(), fmt.Errorf("loading account: %w", err)
	}
	if u == nil {
		return a.State(), ErrNoAccount
	}

	emailOK := strings.EqualFold(strings.TrimSpace(form.Email), u.Email)
	// Always run the hash comparison so a wrong email costs as much as a wrong password.
	passOK := a.hasher.Verify([]byte(form.Password), u.PasswordHash)
	if !emailOK || !passOK {
		a.log.Warn(ctx, "sign-in rejected", "email", form.Email)
		return a.State(), ErrInvalidCredentials
	}

	st := a.sessions.Dispatch(session.Action{Type: session.SignIn, User: u})
	a.log.With("session", st.ID).Info(ctx, "signed in", "email", u.Email)
	return st, nil
}

// UpdateProfile replaces the stored user wholesale. The password hash is
// carried over from the session when u leaves it empty.
func (a *AuthService) UpdateProfile(ctx context.Context, u *models.User) (session.State, error) {
	cur := a.State()
	if !cur.IsAuthenticated {
		return cur, ErrNotAuthenticated
	}
	if u == nil {
		return cur, errors.New("nil profile")
	}

	next := u.Clone()
	if next.PasswordHash == "" {
		next.PasswordHash = cur.User.PasswordHash
	}

	if err := a.store.Save(ctx, next); err != nil {
		return cur, fmt.Errorf("saving profile: %w", err)
	}

	st := a.sessions.Dispatch(session.Action{Type: session.UpdateProfile, User: next})
	a.log.With("session", st.ID).Info(ctx, "profile updated", "cities", len(next.Cities))
	return st, nil
}

// SignOut deletes the stored account and resets the session.
func (a *AuthService) SignOut(ctx context.Context) error {
	id := a.State().ID
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing account: %w", err)
	}
	a.sessions.Dispatch(session.Action{Type: session.SignOut})
	a.log.With("session", id).Info(ctx, "signed out")
	return nil
}
