package service

import (
	"Watchlist/internal/model"
	"Watchlist/internal/repo"
	"Watchlist/internal/validation"
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntryInput поля новой записи.
type EntryInput struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Type        string  `json:"type" validate:"required,entrytype"`
	Director    string  `json:"director" validate:"required,min=1,max=255"`
	Budget      string  `json:"budget" validate:"required,min=1,max=100,budget"`
	Location    string  `json:"location" validate:"required,min=1,max=255"`
	Duration    string  `json:"duration" validate:"required,min=1,max=100"`
	YearTime    string  `json:"yearTime" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitnil,max=512"`
}

// EntryPatch частичное обновление: nil означает "оставить как есть".
type EntryPatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Type        *string `json:"type" validate:"omitnil,entrytype"`
	Director    *string `json:"director" validate:"omitnil,min=1,max=255"`
	Budget      *string `json:"budget" validate:"omitnil,min=1,max=100,budget"`
	Location    *string `json:"location" validate:"omitnil,min=1,max=255"`
	Duration    *string `json:"duration" validate:"omitnil,min=1,max=100"`
	YearTime    *string `json:"yearTime" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitnil,max=512"`
}

// Page окно выдачи списка.
type Page struct {
	Items   []model.Entry
	Page    int
	Limit   int
	Total   int64
	HasMore bool
}

// EntryService CRUD записей, всегда в рамках владельца.
type EntryService struct {
	repo     repo.EntryRepository
	validate *validation.Validator
	logger   *zap.SugaredLogger
}

func NewEntryService(r repo.EntryRepository, v *validation.Validator, logger *zap.SugaredLogger) *EntryService {
	return &EntryService{repo: r, validate: v, logger: logger}
}

// List возвращает страницу записей владельца, новые первыми.
// Total пересчитывается на каждый вызов.
func (s *EntryService) List(ctx context.Context, ownerID int64, page, limit int) (Page, error) {
	var fields []validation.FieldError
	if page < 1 {
		fields = append(fields, validation.FieldError{Field: "page", Message: "Page must be a positive integer"})
	}
	if limit < 1 {
		fields = append(fields, validation.FieldError{Field: "limit", Message: "Limit must be a positive integer"})
	}
	if len(fields) == 0 && page > math.MaxInt/limit {
		fields = append(fields, validation.FieldError{Field: "page", Message: "Page is out of range"})
	}
	if len(fields) > 0 {
		return Page{}, validation.NewError(fields...)
	}

	offset := (page - 1) * limit
	total, err := s.repo.CountByUser(ctx, ownerID)
	if err != nil {
		return Page{}, fmt.Errorf("count entries: %w", err)
	}
	items, err := s.repo.ListByUser(ctx, ownerID, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("list entries: %w", err)
	}
	if items == nil {
		items = []model.Entry{}
	}

	return Page{
		Items:   items,
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

// Get возвращает запись владельца. Чужая запись даёт ErrNotFound.
func (s *EntryService) Get(ctx context.Context, ownerID, id int64) (*model.Entry, error) {
	e, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapEntryErr("get entry", err)
	}
	return e, nil
}

// Create сохраняет новую запись. Владелец берётся из сессии, не из тела запроса.
func (s *EntryService) Create(ctx context.Context, ownerID int64, in EntryInput) (*model.Entry, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	typ, _ := model.ParseEntryType(in.Type)

	e := &model.Entry{
		UserID:      ownerID,
		Title:       in.Title,
		Type:        typ,
		Director:    in.Director,
		Budget:      in.Budget,
		Location:    in.Location,
		Duration:    in.Duration,
		YearTime:    in.YearTime,
		Description: nonEmpty(in.Description),
		ImageURL:    nonEmpty(in.ImageURL),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	s.logger.Debugw("entry created", "entry_id", e.ID, "user_id", ownerID)
	return e, nil
}

// Update применяет только переданные поля. Пустой патч возвращает запись без изменений.
func (s *EntryService) Update(ctx context.Context, ownerID, id int64, p EntryPatch) (*model.Entry, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, err
	}

	updates := p.columns()
	if len(updates) == 0 {
		return s.Get(ctx, ownerID, id)
	}

	e, err := s.repo.Update(ctx, ownerID, id, updates)
	if err != nil {
		return nil, mapEntryErr("update entry", err)
	}
	s.logger.Debugw("entry updated", "entry_id", id, "user_id", ownerID, "fields", len(updates))
	return e, nil
}

// Delete удаляет запись безвозвратно.
func (s *EntryService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return mapEntryErr("delete entry", err)
	}
	s.logger.Debugw("entry deleted", "entry_id", id, "user_id", ownerID)
	return nil
}

// columns переводит патч в набор колонок для UPDATE.
func (p EntryPatch) columns() map[string]any {
	updates := make(map[string]any)
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("title", p.Title)
	set("director", p.Director)
	set("budget", p.Budget)
	set("location", p.Location)
	set("duration", p.Duration)
	set("year_time", p.YearTime)
	if p.Description != nil {
		if *p.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *p.Description
		}
	}
	if p.Type != nil {
		typ, _ := model.ParseEntryType(*p.Type)
		updates["type"] = string(typ)
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			updates["image_url"] = nil
		} else {
			updates["image_url"] = *p.ImageURL
		}
	}
	return updates
}

func mapEntryErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
