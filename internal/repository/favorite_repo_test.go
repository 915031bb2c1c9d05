package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"moviehub/internal/database"
	"moviehub/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := database.Open(dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testRecord(id int, title string) domain.FavoriteRecord {
	return domain.FavoriteRecord{
		ID:                  id,
		Title:               title,
		PosterPath:          "/poster.jpg",
		BackdropPath:        "/backdrop.jpg",
		Overview:            "overview",
		VoteAverage:         7.5,
		Tagline:             "tagline",
		ReleaseDate:         "2020-01-01",
		Status:              "Released",
		Runtime:             120,
		Genres:              []string{"Drama", "Sci-Fi, Fantasy"},
		ProductionCompanies: []string{"Studio A"},
		BelongsToCollection: domain.CollectionEmbedding{ID: 9, Name: "Saga", PosterPath: "/saga.jpg"},
		Favorite:            true,
		HomePage:            "https://example.com",
	}
}

func next[T any](t *testing.T, ch <-chan Result[T]) Result[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "channel closed")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no emission")
	}
	panic("unreachable")
}

func TestUpsertThenGetAndDelete(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRecord(4036, "errem")))

	got, err := repo.GetByID(ctx, 4036)
	require.NoError(t, err)
	assert.Equal(t, 4036, got.ID)
	assert.Equal(t, "errem", got.Title)
	assert.Equal(t, []string{"Drama", "Sci-Fi, Fantasy"}, got.Genres)
	assert.Equal(t, "Saga", got.BelongsToCollection.Name)

	require.NoError(t, repo.Delete(ctx, got.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.GetByID(ctx, 4036)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestClearEmptiesStore(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRecord(4036, "errem")))
	require.NoError(t, repo.Upsert(ctx, testRecord(4234, "other")))

	require.NoError(t, repo.Clear(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	exists, err := repo.Exists(ctx, 4036)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpsertIsIdempotent(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()
	rec := testRecord(1, "once")

	require.NoError(t, repo.Upsert(ctx, rec))
	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, rec))
	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, first, second)
}

func TestUpsertReplacesFieldsButKeepsSavedAt(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRecord(1, "old")))
	before, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	updated := testRecord(1, "new")
	updated.Genres = nil
	updated.Runtime = 0
	require.NoError(t, repo.Upsert(ctx, updated))

	after, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", after.Title)
	assert.Zero(t, after.Runtime)
	assert.Empty(t, after.Genres)
	assert.True(t, before.SavedAt.Equal(after.SavedAt))
}

func TestUpsertForcesFavoriteFlag(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	rec := testRecord(2, "flag")
	rec.Favorite = false
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
}

func TestUpsertRejectsInvalidID(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	err := repo.Upsert(context.Background(), testRecord(0, "bad"))
	assert.ErrorIs(t, err, ErrInvalidFavorite)
}

func TestToggleAlternates(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	stored, err := repo.Toggle(ctx, testRecord(4036, "first"))
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := repo.GetByID(ctx, 4036)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
	assert.False(t, got.SavedAt.IsZero())

	stored, err = repo.Toggle(ctx, testRecord(4036, "first"))
	require.NoError(t, err)
	assert.False(t, stored)

	exists, err := repo.Exists(ctx, 4036)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Toggle(ctx, testRecord(0, "bad"))
	assert.ErrorIs(t, err, ErrInvalidFavorite)
}

func TestConcurrentTogglesAlternate(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	const n = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []bool
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := repo.Toggle(ctx, testRecord(4234, "second"))
			assert.NoError(t, err)
			mu.Lock()
			results = append(results, stored)
			mu.Unlock()
		}()
	}
	wg.Wait()

	marked := 0
	for _, r := range results {
		if r {
			marked++
		}
	}
	assert.Equal(t, n/2, marked)

	exists, err := repo.Exists(ctx, 4234)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	assert.NoError(t, repo.Delete(context.Background(), 404))
}

func TestListOrderIsStable(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	for _, id := range []int{3, 1, 2} {
		rec := testRecord(id, "m")
		rec.SavedAt = time.Date(2024, 1, id, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Upsert(ctx, rec))
	}
	// re-saving must not move the row to the end
	require.NoError(t, repo.Upsert(ctx, testRecord(1, "again")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "again", all[0].Title)
}

func TestWatchAllEmitsAfterMutations(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.WatchAll(ctx)
	first := next(t, ch)
	require.NoError(t, first.Err)
	assert.Empty(t, first.Value)

	require.NoError(t, repo.Upsert(ctx, testRecord(4036, "errem")))
	second := next(t, ch)
	require.NoError(t, second.Err)
	require.Len(t, second.Value, 1)
	assert.Equal(t, 4036, second.Value[0].ID)

	require.NoError(t, repo.Clear(ctx))
	third := next(t, ch)
	require.NoError(t, third.Err)
	assert.Empty(t, third.Value)
}

func TestWatchIsFavoriteFollowsRowPresence(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.WatchIsFavorite(ctx, 4036)
	assert.False(t, next(t, ch).Value)

	require.NoError(t, repo.Upsert(ctx, testRecord(4036, "errem")))
	assert.True(t, next(t, ch).Value)

	// unrelated rows do not produce a duplicate emission
	require.NoError(t, repo.Upsert(ctx, testRecord(4234, "other")))
	require.NoError(t, repo.Clear(ctx))
	assert.False(t, next(t, ch).Value)
}

func TestWatchByID(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.WatchByID(ctx, 7)
	first := next(t, ch)
	require.NoError(t, first.Err)
	assert.False(t, first.Value.Found)

	require.NoError(t, repo.Upsert(ctx, testRecord(7, "seven")))
	second := next(t, ch)
	require.NoError(t, second.Err)
	assert.True(t, second.Value.Found)
	assert.Equal(t, "seven", second.Value.Record.Title)
}

func TestWatchClosesOnCancel(t *testing.T) {
	repo := NewFavoriteRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())

	ch := repo.WatchAll(ctx)
	next(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed")
	}
}

func TestWatchReportsReadErrors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, db.Migrator().DropTable(&domain.FavoriteRecord{}))

	r := next(t, repo.WatchAll(ctx))
	assert.Error(t, r.Err)
	assert.Nil(t, r.Value)
}
