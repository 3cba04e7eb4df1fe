package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/session"
)

func newTestDraft(lastActive time.Time) *session.Draft {
	d := session.NewDraft(listing.GarmentRecord{Brand: "Levi's", ConditionScore: 3}, lastActive)
	d.ImagePaths = []string{"/tmp/a.jpg", "/tmp/b.jpg"}
	return d
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	draft := newTestDraft(time.Now())

	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
	assert.Equal(t, "Levi's", got.Record.Brand)
	assert.Equal(t, draft.ImagePaths, got.ImagePaths)

	require.NoError(t, store.Delete(ctx, draft.ID))
	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)

	err = store.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_CopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	draft := newTestDraft(time.Now())
	require.NoError(t, store.Save(ctx, draft))

	// Mutating the saved draft does not change the stored copy.
	draft.ImagePaths[0] = "mutated"
	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.jpg", got.ImagePaths[0])

	// Mutating a fetched copy does not change the stored one either.
	got.Record.Brand = "changed"
	again, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Levi's", again.Record.Brand)
}

func TestMemoryStore_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	draft := newTestDraft(time.Now())
	require.NoError(t, store.Save(ctx, draft))

	draft.Record.Brand = "Wrangler"
	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wrangler", got.Record.Brand)
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	stale := newTestDraft(now.Add(-2 * time.Hour))
	fresh := newTestDraft(now)
	require.NoError(t, store.Save(ctx, stale))
	require.NoError(t, store.Save(ctx, fresh))

	expired, err := store.Expired(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
}
