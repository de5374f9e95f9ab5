// Package storage хранит загруженные изображения (постеры записей и аватары).
package storage

import (
	"Watchlist/internal/config"
	"context"
	"fmt"
	"io"
)

// Storage сохраняет файл и возвращает URL, по которому он доступен клиенту.
type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// LocalURLPrefix префикс URL файлов локального хранилища.
const LocalURLPrefix = "/uploads"

// New выбирает реализацию по конфигурации.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Storage(ctx, S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			PublicURL:    cfg.S3PublicURL,
			UsePathStyle: cfg.S3UsePathStyle,
		})
	case "local", "":
		return NewLocalStorage(cfg.UploadDir, LocalURLPrefix), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
