package handlers_test

import (
	"Watchlist/internal/auth"
	"Watchlist/internal/config"
	"Watchlist/internal/handlers"
	"Watchlist/internal/repo"
	"Watchlist/internal/service"
	"Watchlist/internal/storage"
	"Watchlist/internal/validation"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testEnv struct {
	router    http.Handler
	cfg       *config.Config
	uploadDir string
}

// newTestEnv собирает роутер целиком поверх in-memory SQLite и локального хранилища
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := repo.InitDB(dsn, repo.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.CloseDB(db) })

	cfg := &config.Config{AuthSecret: testSecret, CORSOrigin: "http://localhost:5173", UploadMaxMB: 1, UploadDir: t.TempDir()}
	logger := zap.NewNop().Sugar()
	v := validation.New()

	userSvc := service.NewUserService(repo.NewUserRepository(db, time.Second), v)
	entrySvc := service.NewEntryService(repo.NewEntryRepository(db, time.Second), v, logger)
	store := storage.NewLocalStorage(cfg.UploadDir, storage.LocalURLPrefix)

	h := handlers.NewHandler(userSvc, entrySvc, auth.NewIssuer(testSecret, time.Hour), store, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, uploadDir: cfg.UploadDir}
}

// do выполняет запрос; body сериализуется в JSON, если это не строка
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// register регистрирует пользователя и возвращает токен и id
func (e *testEnv) register(t *testing.T, name, email, password string) (string, int64) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp handlers.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

type validationBody struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func inceptionBody() map[string]string {
	return map[string]string{
		"title":    "Inception",
		"type":     "Movie",
		"director": "Nolan",
		"budget":   "$160M",
		"location": "LA",
		"duration": "148 min",
		"yearTime": "2010",
	}
}
