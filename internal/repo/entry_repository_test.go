package repo

import (
	"Watchlist/internal/model"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// хелпер для создания базовой записи
func mkEntry(userID int64, title string, created time.Time) model.Entry {
	return model.Entry{
		UserID:    userID,
		Title:     title,
		Type:      model.EntryTypeMovie,
		Director:  "Nolan",
		Budget:    "$160M",
		Location:  "LA",
		Duration:  "148 min",
		YearTime:  "2010",
		CreatedAt: created.UTC(),
	}
}

func mkUser(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	u, err := NewUserRepository(db, time.Second).CreateUser(context.Background(), &model.User{Name: email, Email: email, Password: "h"})
	require.NoError(t, err)
	return u.ID
}

func TestEntryRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db, time.Second)
	ctx := context.Background()
	owner := mkUser(t, db, "a@x.com")
	other := mkUser(t, db, "b@x.com")

	e := mkEntry(owner, "Inception", time.Now())
	require.NoError(t, r.Create(ctx, &e))
	assert.NotZero(t, e.ID)

	// найдено по id+user
	got, err := r.GetByID(ctx, owner, e.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, "Inception", got.Title)
	assert.Nil(t, got.Description)

	// другой пользователь: не найдено
	got, err = r.GetByID(ctx, other, e.ID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEntryRepository_ListByUser_OrderAndWindow(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db, time.Second)
	ctx := context.Background()
	owner := mkUser(t, db, "a@x.com")
	other := mkUser(t, db, "b@x.com")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		e := mkEntry(owner, fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, r.Create(ctx, &e))
	}
	foreign := mkEntry(other, "foreign", time.Now())
	require.NoError(t, r.Create(ctx, &foreign))

	total, err := r.CountByUser(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// первая страница: самые новые
	page, err := r.ListByUser(ctx, owner, 0, 2)
	require.NoError(t, err)
	for _, e := range page {
		assert.Equal(t, owner, e.UserID)
	}
	if assert.Len(t, page, 2) {
		assert.Equal(t, "e4", page[0].Title)
		assert.Equal(t, "e3", page[1].Title)
	}

	// последняя неполная страница
	page, err = r.ListByUser(ctx, owner, 4, 2)
	require.NoError(t, err)
	if assert.Len(t, page, 1) {
		assert.Equal(t, "e0", page[0].Title)
	}

	// за пределами: пусто, но не nil
	page, err = r.ListByUser(ctx, owner, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestEntryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db, time.Second)
	ctx := context.Background()
	owner := mkUser(t, db, "a@x.com")
	other := mkUser(t, db, "b@x.com")

	e := mkEntry(owner, "Inception", time.Now().Add(-time.Minute))
	require.NoError(t, r.Create(ctx, &e))

	got, err := r.Update(ctx, owner, e.ID, map[string]any{"description": "x"})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "x", *got.Description)
	// остальные поля не тронуты
	assert.Equal(t, "Inception", got.Title)
	assert.Equal(t, "$160M", got.Budget)
	assert.Equal(t, model.EntryTypeMovie, got.Type)

	// чужой владелец: не найдено, данные не меняются
	_, err = r.Update(ctx, other, e.ID, map[string]any{"title": "hijack"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	got, err = r.GetByID(ctx, owner, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.Title)

	_, err = r.Update(ctx, owner, 9999, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEntryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db, time.Second)
	ctx := context.Background()
	owner := mkUser(t, db, "a@x.com")
	other := mkUser(t, db, "b@x.com")

	e := mkEntry(owner, "Inception", time.Now())
	require.NoError(t, r.Create(ctx, &e))

	assert.ErrorIs(t, r.Delete(ctx, other, e.ID), gorm.ErrRecordNotFound)
	require.NoError(t, r.Delete(ctx, owner, e.ID))

	// повторное удаление: not found
	assert.ErrorIs(t, r.Delete(ctx, owner, e.ID), gorm.ErrRecordNotFound)
	_, err := r.GetByID(ctx, owner, e.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
