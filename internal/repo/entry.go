package repo

import (
	"Watchlist/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// EntryRepository контракт доступа к записям списка.
// Все операции ограничены владельцем: чужая запись неотличима от отсутствующей
// и даёт gorm.ErrRecordNotFound.
type EntryRepository interface {
	// ListByUser возвращает окно записей владельца, новые первыми.
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Entry, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Entry, error)
	Create(ctx context.Context, e *model.Entry) error
	// Update: одно условное UPDATE по (id, user_id), затем чтение строки.
	Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Entry, error)
	Delete(ctx context.Context, userID, id int64) error
}

type entryRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewEntryRepository создаёт реализацию репозитория для Entry.
func NewEntryRepository(db *gorm.DB, timeout time.Duration) EntryRepository {
	return &entryRepo{db: db, timeout: timeout}
}

func (r *entryRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Entry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	entries := make([]model.Entry, 0, limit)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Entry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *entryRepo) GetByID(ctx context.Context, userID, id int64) (*model.Entry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var e model.Entry
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Create(ctx context.Context, e *model.Entry) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entryRepo) Update(ctx context.Context, userID, id int64, updates map[string]any) (*model.Entry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var e model.Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Entry{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).Take(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Delete(ctx context.Context, userID, id int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
