// Package vault is the secure record store: it keeps exactly one serialized
// user, encrypted with a key derived from the device secret, under a fixed key
// of the records table.
package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/repositories/records"
	"github.com/dmitrijs2005/weatherface/internal/common"
	"github.com/dmitrijs2005/weatherface/internal/cryptox"
	"github.com/dmitrijs2005/weatherface/internal/dbx"
)

const (
	// userKey is the only key a user record is ever written under, which is
	// what makes the store single-account.
	userKey = "user"
	saltKey = "kdf_salt"

	saltSize = 16
)

// ErrCorruptRecord means the stored record could not be decrypted or decoded,
// typically because the device secret changed.
var ErrCorruptRecord = errors.New("stored user record is unreadable")

// Store persists the single active user.
type Store struct {
	repo records.Repository
	key  []byte
}

// Open prepares a Store on db. The record key is derived from secret and a
// per-database salt, which is created on first use.
func Open(ctx context.Context, db *sql.DB, secret []byte) (*Store, error) {
	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := records.NewSQLiteRepository(tx)

		s, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}
		if s == nil {
			s = common.GenerateRandByteArray(saltSize)
			if err := repo.Set(ctx, saltKey, s); err != nil {
				return err
			}
		}
		salt = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault salt: %w", err)
	}

	return &Store{
		repo: records.NewSQLiteRepository(db),
		key:  cryptox.DeriveKey(secret, salt),
	}, nil
}

// Save serializes and encrypts u, replacing any previously stored user.
func (s *Store) Save(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("vault: nil user")
	}
	sealed, err := cryptox.SealJSON(u, s.key)
	if err != nil {
		return fmt.Errorf("vault: seal user: %w", err)
	}
	return s.repo.Set(ctx, userKey, sealed)
}

// Load returns the stored user, or (nil, nil) when nothing was ever saved
// or the store was cleared.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	sealed, err := s.repo.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, nil
	}

	var u models.User
	if err := cryptox.OpenJSON(sealed, s.key, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &u, nil
}

// Clear removes the stored user. The salt stays so a later Save keeps working.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, userKey)
}
