package repository

import (
	"testing"
	"time"

	"go-shakti-admin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRecord(user, hash string, expires time.Time) *model.SessionRecord {
	return &model.SessionRecord{
		UserCode:  user,
		TokenHash: hash,
		IssuedAt:  time.Now(),
		ExpiresAt: expires,
	}
}

func TestMemoryRepo_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := NewMemorySessionRepo()
	rec := newRecord("USR-1", "hash-a", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(rec))
	require.NotEqual(t, uuid.Nil, rec.ID, "create must assign an id")

	got, err := repo.FindByTokenHash("hash-a")
	require.NoError(t, err)
	require.Equal(t, "USR-1", got.UserCode)
	require.True(t, got.Live(time.Now()))

	// The returned record is a copy; mutating it must not leak back.
	got.UserCode = "tampered"
	again, err := repo.FindByTokenHash("hash-a")
	require.NoError(t, err)
	require.Equal(t, "USR-1", again.UserCode)

	_, err = repo.FindByTokenHash("no-such")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRepo_Revoke(t *testing.T) {
	t.Parallel()

	repo := NewMemorySessionRepo()
	require.NoError(t, repo.Create(newRecord("USR-1", "hash-a", time.Now().Add(time.Hour))))

	at := time.Now()
	require.NoError(t, repo.Revoke("hash-a", at))

	got, err := repo.FindByTokenHash("hash-a")
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	require.False(t, got.Live(time.Now()))

	// A second revoke keeps the original timestamp.
	require.NoError(t, repo.Revoke("hash-a", at.Add(time.Minute)))
	again, err := repo.FindByTokenHash("hash-a")
	require.NoError(t, err)
	require.True(t, again.RevokedAt.Equal(*got.RevokedAt))

	// Revoking an unknown hash is a no-op.
	require.NoError(t, repo.Revoke("no-such", at))
}

func TestMemoryRepo_RevokeAllForUser(t *testing.T) {
	t.Parallel()

	repo := NewMemorySessionRepo()
	exp := time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(newRecord("USR-1", "hash-a", exp)))
	require.NoError(t, repo.Create(newRecord("USR-1", "hash-b", exp)))
	require.NoError(t, repo.Create(newRecord("USR-2", "hash-c", exp)))

	require.NoError(t, repo.RevokeAllForUser("USR-1", time.Now()))

	for _, hash := range []string{"hash-a", "hash-b"} {
		got, err := repo.FindByTokenHash(hash)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt, "%s belongs to USR-1 and must be revoked", hash)
	}

	other, err := repo.FindByTokenHash("hash-c")
	require.NoError(t, err)
	require.Nil(t, other.RevokedAt, "other users' sessions stay live")
}

func TestMemoryRepo_PurgeExpired(t *testing.T) {
	t.Parallel()

	repo := NewMemorySessionRepo()
	now := time.Now()
	require.NoError(t, repo.Create(newRecord("USR-1", "hash-old", now.Add(-time.Minute))))
	require.NoError(t, repo.Create(newRecord("USR-1", "hash-live", now.Add(time.Hour))))

	n, err := repo.PurgeExpired(now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.FindByTokenHash("hash-old")
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = repo.FindByTokenHash("hash-live")
	require.NoError(t, err)
}
