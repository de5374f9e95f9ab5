package middleware

import (
	"compress/gzip"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var compressor = chimw.NewCompressor(gzip.DefaultCompression, "application/json", "text/plain")

// WithGzip сжимает JSON и текстовые ответы, если клиент прислал Accept-Encoding: gzip.
func WithGzip(next http.Handler) http.Handler {
	return compressor.Handler(next)
}
