package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/web"
)

func newRouter(books *book.HTTPHandler, pages *web.Handler, metrics *httpx.Metrics, service *book.Service) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if _, err := service.All(ctx); err != nil {
			http.Error(w, "catalog not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())

	router.HandleFunc("GET /api/search", books.Search)
	router.HandleFunc("GET /api/books/{id}", books.GetByID)
	router.HandleFunc("POST /api/books", books.Create)

	router.HandleFunc("GET /{$}", pages.Search)
	router.HandleFunc("GET /book/{id}", pages.Detail)
	router.HandleFunc("GET /add-book", pages.AddForm)
	router.HandleFunc("POST /add-book", pages.AddSubmit)
	router.Handle("GET /static/", web.Static())

	return router
}

// withMiddleware wraps the router in the standard stack. The metrics
// middleware stays innermost so it can read the matched route pattern.
func withMiddleware(router http.Handler, cfg config.Config, metrics *httpx.Metrics, limiter *httpx.RateLimitMiddleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	}
	mws = append(mws,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		metrics.Middleware,
	)
	return httpx.Chain(router, mws...)
}
