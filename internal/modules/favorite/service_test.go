package favorite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
	"moviehub/internal/repository"
	"moviehub/internal/tmdb"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, record domain.FavoriteRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) List(ctx context.Context) ([]domain.FavoriteRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavoriteRecord), args.Error(1)
}

func (m *MockStore) GetByID(ctx context.Context, id int) (*domain.FavoriteRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteRecord), args.Error(1)
}

func (m *MockStore) Toggle(ctx context.Context, record domain.FavoriteRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) WatchAll(ctx context.Context) <-chan repository.Result[[]domain.FavoriteRecord] {
	return m.Called(ctx).Get(0).(chan repository.Result[[]domain.FavoriteRecord])
}

func (m *MockStore) WatchByID(ctx context.Context, id int) <-chan repository.Result[repository.FavoriteLookup] {
	return m.Called(ctx, id).Get(0).(chan repository.Result[repository.FavoriteLookup])
}

func (m *MockStore) WatchIsFavorite(ctx context.Context, id int) <-chan repository.Result[bool] {
	return m.Called(ctx, id).Get(0).(chan repository.Result[bool])
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Detail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovieDetail), args.Error(1)
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no value")
	}
	panic("unreachable")
}

func TestService_MarkFavorite_UpsertsFavoriteRecord(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))

	d := sampleDetail(4036)
	d.Favorite = false
	want := ToRecord(d)
	want.Favorite = true
	store.On("Upsert", mock.Anything, want).Return(nil)

	require.NoError(t, svc.MarkFavorite(context.Background(), d))
	store.AssertExpectations(t)
}

func TestService_MarkFavorite_RejectsInvalidID(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))

	err := svc.MarkFavorite(context.Background(), domain.MovieDetail{})
	assert.ErrorIs(t, err, ErrInvalidMovie)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestService_UnmarkFavorite(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))
	store.On("Delete", mock.Anything, 4036).Return(nil)

	require.NoError(t, svc.UnmarkFavorite(context.Background(), sampleDetail(4036)))
	store.AssertExpectations(t)
}

func TestService_MarkByID_FetchesRemote(t *testing.T) {
	store := new(MockStore)
	remote := new(MockFetcher)
	svc := NewService(store, remote)

	d := sampleDetail(550)
	d.Favorite = false
	remote.On("Detail", mock.Anything, 550).Return(&d, nil)
	store.On("Upsert", mock.Anything, mock.MatchedBy(func(r domain.FavoriteRecord) bool {
		return r.ID == 550 && r.Favorite
	})).Return(nil)

	got, err := svc.MarkByID(context.Background(), 550)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
	store.AssertExpectations(t)
}

func TestService_MarkByID_RemoteFailure(t *testing.T) {
	store := new(MockStore)
	remote := new(MockFetcher)
	svc := NewService(store, remote)

	remote.On("Detail", mock.Anything, 1).Return(nil, &tmdb.FetchError{Kind: tmdb.KindNetwork, Err: errors.New("timeout")})

	_, err := svc.MarkByID(context.Background(), 1)
	assert.ErrorIs(t, err, tmdb.ErrNetwork)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestService_Toggle(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))
	d := sampleDetail(7)
	d.Favorite = false

	isStored := mock.MatchedBy(func(r domain.FavoriteRecord) bool { return r.ID == 7 && r.Favorite })
	store.On("Toggle", mock.Anything, isStored).Return(true, nil).Once()
	fav, err := svc.Toggle(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, fav)

	store.On("Toggle", mock.Anything, isStored).Return(false, nil).Once()
	fav, err = svc.Toggle(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = svc.Toggle(context.Background(), domain.MovieDetail{})
	assert.ErrorIs(t, err, ErrInvalidMovie)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestService_Get_NotFound(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))
	store.On("GetByID", mock.Anything, 9).Return(nil, repository.ErrFavoriteNotFound)

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, repository.ErrFavoriteNotFound)
}

func TestService_IsFavorite_ReadFailureEmitsFalse(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))

	src := make(chan repository.Result[bool], 3)
	src <- repository.Result[bool]{Value: true}
	src <- repository.Result[bool]{Err: errors.New("disk I/O error")}
	src <- repository.Result[bool]{Value: true}
	store.On("WatchIsFavorite", mock.Anything, 4036).Return(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := svc.IsFavorite(ctx, 4036)

	assert.True(t, recv(t, out))
	assert.False(t, recv(t, out))
	assert.True(t, recv(t, out))
}

func TestService_AllFavorites_ReadFailureEmitsEmpty(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))

	src := make(chan repository.Result[[]domain.FavoriteRecord], 2)
	src <- repository.Result[[]domain.FavoriteRecord]{Value: []domain.FavoriteRecord{ToRecord(sampleDetail(1))}}
	src <- repository.Result[[]domain.FavoriteRecord]{Err: errors.New("no such table")}
	close(src)
	store.On("WatchAll", mock.Anything).Return(src)

	out := svc.AllFavorites(context.Background())

	first := recv(t, out)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].ID)

	second := recv(t, out)
	assert.NotNil(t, second)
	assert.Empty(t, second)

	_, ok := <-out
	assert.False(t, ok)
}

func TestService_Favorite_Stream(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFetcher))

	src := make(chan repository.Result[repository.FavoriteLookup], 3)
	src <- repository.Result[repository.FavoriteLookup]{}
	src <- repository.Result[repository.FavoriteLookup]{Value: repository.FavoriteLookup{Record: ToRecord(sampleDetail(3)), Found: true}}
	src <- repository.Result[repository.FavoriteLookup]{Err: errors.New("boom")}
	close(src)
	store.On("WatchByID", mock.Anything, 3).Return(src)

	out := svc.Favorite(context.Background(), 3)
	assert.Nil(t, recv(t, out))
	got := recv(t, out)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ID)
	assert.Nil(t, recv(t, out))
}
