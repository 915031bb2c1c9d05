package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviehub/internal/domain"
	"moviehub/internal/pkg/broadcast"
)

// FavoriteLookup is the outcome of a keyed read; Found is false when the
// movie is not stored.
type FavoriteLookup struct {
	Record domain.FavoriteRecord
	Found  bool
}

// FavoriteRepository is the local mirror of favorited movies.
type FavoriteRepository interface {
	Upsert(ctx context.Context, record domain.FavoriteRecord) error
	Delete(ctx context.Context, id int) error
	Clear(ctx context.Context) error
	Toggle(ctx context.Context, record domain.FavoriteRecord) (bool, error)

	List(ctx context.Context) ([]domain.FavoriteRecord, error)
	GetByID(ctx context.Context, id int) (*domain.FavoriteRecord, error)
	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int64, error)

	WatchAll(ctx context.Context) <-chan Result[[]domain.FavoriteRecord]
	WatchByID(ctx context.Context, id int) <-chan Result[FavoriteLookup]
	WatchIsFavorite(ctx context.Context, id int) <-chan Result[bool]
}

type favoriteRepository struct {
	db      *gorm.DB
	changes *broadcast.Hub[struct{}]

	// toggleMu serializes Toggle calls of this process; the transaction
	// alone does not stop two SQLite readers from both seeing no row.
	toggleMu sync.Mutex
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{
		db:      db,
		changes: broadcast.NewHub[struct{}](),
	}
}

// Upsert inserts the record or replaces every column of the existing row
// except saved_at, which keeps the original insertion time. The stored
// row is always marked as favorite.
func (r *favoriteRepository) Upsert(ctx context.Context, record domain.FavoriteRecord) error {
	if record.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFavorite, record.ID)
	}
	prepareFavorite(&record)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("upsert favorite %d: %w", record.ID, err)
	}

	r.changes.Publish(struct{}{})
	return nil
}

// Toggle stores record when its movie is absent and deletes the row
// otherwise, checking and writing in one transaction. It reports whether
// the movie is stored afterwards.
func (r *favoriteRepository) Toggle(ctx context.Context, record domain.FavoriteRecord) (bool, error) {
	if record.ID <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidFavorite, record.ID)
	}
	prepareFavorite(&record)

	r.toggleMu.Lock()
	defer r.toggleMu.Unlock()

	var stored bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.FavoriteRecord{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.Delete(&domain.FavoriteRecord{}, record.ID).Error
		}
		stored = true
		return tx.Create(&record).Error
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite %d: %w", record.ID, err)
	}

	r.changes.Publish(struct{}{})
	return stored, nil
}

// Delete is a no-op when the movie is not stored.
func (r *favoriteRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.FavoriteRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete favorite %d: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		r.changes.Publish(struct{}{})
	}
	return nil
}

func (r *favoriteRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.FavoriteRecord{})
	if result.Error != nil {
		return fmt.Errorf("clear favorites: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		r.changes.Publish(struct{}{})
	}
	return nil
}

// List returns favorites oldest first.
func (r *favoriteRepository) List(ctx context.Context) ([]domain.FavoriteRecord, error) {
	records := make([]domain.FavoriteRecord, 0)
	err := r.db.WithContext(ctx).
		Order("saved_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return records, nil
}

func (r *favoriteRepository) GetByID(ctx context.Context, id int) (*domain.FavoriteRecord, error) {
	var record domain.FavoriteRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("get favorite %d: %w", id, err)
	}
	return &record, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FavoriteRecord{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FavoriteRecord{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}

func (r *favoriteRepository) WatchAll(ctx context.Context) <-chan Result[[]domain.FavoriteRecord] {
	return watch(ctx, r.changes.Subscribe(ctx), r.List)
}

func (r *favoriteRepository) WatchByID(ctx context.Context, id int) <-chan Result[FavoriteLookup] {
	return watch(ctx, r.changes.Subscribe(ctx), func(ctx context.Context) (FavoriteLookup, error) {
		record, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrFavoriteNotFound) {
			return FavoriteLookup{}, nil
		}
		if err != nil {
			return FavoriteLookup{}, err
		}
		return FavoriteLookup{Record: *record, Found: true}, nil
	})
}

func (r *favoriteRepository) WatchIsFavorite(ctx context.Context, id int) <-chan Result[bool] {
	return watch(ctx, r.changes.Subscribe(ctx), func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, id)
	})
}

// prepareFavorite applies what every stored row carries: the favorite
// flag and a save time.
func prepareFavorite(record *domain.FavoriteRecord) {
	record.Favorite = true
	if record.SavedAt.IsZero() {
		record.SavedAt = time.Now().UTC()
	}
}
