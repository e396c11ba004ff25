package vault

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/weatherface/internal/client/client"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleUser() *models.User {
	return &models.User{
		Email:        "john@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		PhoneNumber:  "+420777123456",
		Cities:       []models.City{models.NewCity("Prague", 11000)},
	}
}

func TestLoad_NeverWritten(t *testing.T) {
	s, err := Open(context.Background(), setupDB(t), []byte("secret"))
	require.NoError(t, err)

	u, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s, err := Open(ctx, db, []byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleUser()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), got)

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM records WHERE key = 'user'`).Scan(&raw))
	assert.NotContains(t, string(raw), "john@example.com", "record must be encrypted at rest")
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, setupDB(t), []byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleUser()))
	updated := sampleUser()
	updated.Cities = append(updated.Cities, models.NewCity("Brno", 60200))
	require.NoError(t, s.Save(ctx, updated))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Cities, 2)
}

func TestClear_ThenLoadReturnsNil(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, setupDB(t), []byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleUser()))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Clear(ctx))
}

func TestReopen_SameSecretReadsRecord(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	s1, err := Open(ctx, db, []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, sampleUser()))

	s2, err := Open(ctx, db, []byte("secret"))
	require.NoError(t, err)
	got, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", got.Email)
}

func TestReopen_OtherSecretIsCorrupt(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	s1, err := Open(ctx, db, []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, sampleUser()))

	s2, err := Open(ctx, db, []byte("another"))
	require.NoError(t, err)
	_, err = s2.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestSave_NilUser(t *testing.T) {
	s, err := Open(context.Background(), setupDB(t), []byte("secret"))
	require.NoError(t, err)
	assert.Error(t, s.Save(context.Background(), nil))
}
