package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string        `env:"DATABASE_URI"`
	AuthSecret     string        `env:"AUTH_SECRET"`
	JWTSecret      string        `env:"JWT_SECRET"` // устаревшее имя AUTH_SECRET
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	DBTimeout      time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	Env            string        `env:"ENV" envDefault:"development"`

	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	CORSOrigin  string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	// Image storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"` // local | s3
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadMaxMB   int    `env:"UPLOAD_MAX_MB" envDefault:"5"`

	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`

	ServerURL string `env:"-"`
}

const (
	defaultAuthSecret = "dev-secret-key"
	defaultBaseURL    = "localhost:3001"
	defaultDSN        = "file:watchlist.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги перекрывают значения, пришедшие из env
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес сервера host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "публичная схема https")
	flag.StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "разрешённый Origin фронтенда")
	flag.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "хранилище изображений: local | s3")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных изображений")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "максимальный размер изображения, МБ")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет пустые и некорректные значения.
func (c *Config) applyDefaults() {
	if c.AuthSecret == "" {
		c.AuthSecret = c.JWTSecret
	}
	if c.AuthSecret == "" {
		c.AuthSecret = defaultAuthSecret
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = defaultDSN
	}
	// BaseURL должен быть в формате "address:port" (без схемы и пути)
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = defaultBaseURL
	}
	if c.EnableHTTPS {
		c.ServerURL = "https://" + c.BaseURL
	} else {
		c.ServerURL = "http://" + c.BaseURL
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 7 * 24 * time.Hour
	}
	if c.DBTimeout <= 0 {
		c.DBTimeout = 5 * time.Second
	}
	if c.UploadMaxMB <= 0 {
		c.UploadMaxMB = 5
	}
	if c.StorageDriver != "s3" {
		c.StorageDriver = "local"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.CORSOrigin == "" {
		c.CORSOrigin = "http://localhost:5173"
	}
	if c.DBMaxOpenConns <= 0 {
		c.DBMaxOpenConns = 10
	}
	if c.DBMaxIdleConns <= 0 {
		c.DBMaxIdleConns = 5
	}
}

// IsProduction сообщает, запущен ли сервер в боевом окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDefaultSecret сообщает, что токены подписываются встроенным dev-секретом.
func (c *Config) HasDefaultSecret() bool {
	return c.AuthSecret == defaultAuthSecret
}
