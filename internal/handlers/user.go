package handlers

import (
	"Watchlist/internal/auth"
	"Watchlist/internal/middleware"
	"Watchlist/internal/model"
	"Watchlist/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler регистрация, вход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Issuer      *auth.Issuer
	Logger      *zap.SugaredLogger
}

// NewUserHandler создаёт хендлер пользователей
func NewUserHandler(userService *service.UserService, issuer *auth.Issuer, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Issuer: issuer, Logger: logger}
}

// Register регистрация нового пользователя, сразу выдаёт токен
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.UserService.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Logger, "User", err)
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID)
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login вход по email и паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.UserService.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Logger, "User", err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

// GetProfile профиль текущего пользователя
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.Logger, "User", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

// UpdateProfile меняет имя и/или аватар
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var in service.ProfileUpdate
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, h.Logger, "User", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

func (h *UserHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *model.User) {
	token, _, err := h.Issuer.Issue(auth.Identity{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		writeServiceError(w, r, h.Logger, "User", err)
		return
	}
	writeJSON(w, status, AuthResponse{Token: token, User: toUserView(user)})
}
