package handlers

import (
	"Watchlist/internal/middleware"
	"Watchlist/internal/service"
	"Watchlist/internal/validation"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntryHandler CRUD записей текущего пользователя.
type EntryHandler struct {
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
}

// NewEntryHandler создаёт хендлер записей
func NewEntryHandler(entryService *service.EntryService, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{EntryService: entryService, Logger: logger}
}

// List страница записей, новые первыми
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	q := r.URL.Query()
	page, limit, err := validation.ParsePagination(q.Get("page"), q.Get("limit"))
	if err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}

	p, err := h.EntryService.List(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}

	data := make([]EntryView, 0, len(p.Items))
	for i := range p.Items {
		data = append(data, toEntryView(&p.Items[i]))
	}
	writeJSON(w, http.StatusOK, EntryListResponse{
		Data: data,
		Pagination: Pagination{
			Page:    p.Page,
			Limit:   p.Limit,
			Total:   p.Total,
			HasMore: p.HasMore,
		},
	})
}

// Get одна запись
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	e, err := h.EntryService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryView(e))
}

// Create новая запись
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var in service.EntryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	e, err := h.EntryService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryView(e))
}

// Update частичное обновление записи
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var p service.EntryPatch
	if !decodeJSON(w, r, &p) {
		return
	}

	e, err := h.EntryService.Update(r.Context(), userID, id, p)
	if err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryView(e))
}

// Delete удаление записи
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.EntryService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, h.Logger, "Entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// entryID разбирает {id} из пути, допускаются только положительные целые
func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return 0, false
	}
	return id, true
}
