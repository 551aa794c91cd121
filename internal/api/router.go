package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/views"
)

// LinkStore is the full link store surface used by the api
type LinkStore interface {
	LinkCreator
	LinkReader
	LinkConsumer
}

// NoteService is the full note manager surface used by the api
type NoteService interface {
	NoteCreator
	NoteStatusReader
	NoteDecrypter
	NoteDeleter
}

// HandlerConfig holds the request limits and defaults of the api
type HandlerConfig struct {
	MaxDataSize      int64
	WebExternalURL   *url.URL
	DefaultExpire    time.Duration
	MaxExpireSeconds int
	RequestTimeout   time.Duration
}

// NewRouter wires the api endpoints onto a chi router
func NewRouter(store LinkStore, noteService NoteService, config HandlerConfig, logger *zap.Logger) http.Handler {
	shareCreate := NewShareCreateHandler(
		config.MaxDataSize,
		parsers.NewCreateShareParser(config.DefaultExpire, config.MaxExpireSeconds),
		store,
		views.NewShareCreateView(config.WebExternalURL),
		logger,
	)
	shareGet := NewShareGetHandler(store, views.NewShareReadView(), logger)
	shareConsume := NewShareConsumeHandler(store, views.NewShareConsumeView(), logger)

	noteCreate := NewNoteCreateHandler(
		config.MaxDataSize,
		parsers.NewCreateNoteParser(config.DefaultExpire, config.MaxExpireSeconds),
		noteService,
		views.NewNoteCreateView(config.WebExternalURL),
		logger,
	)
	noteStatus := NewNoteStatusHandler(noteService, views.NewNoteStatusView(), logger)
	noteDecrypt := NewNoteDecryptHandler(
		config.MaxDataSize,
		parsers.NewDecryptNoteParser(),
		noteService,
		views.NewNoteDecryptView(),
		logger,
	)
	noteDelete := NewNoteDeleteHandler(noteService, views.NewNoteDeleteView(), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(config.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthHandler)

		r.Post("/share", shareCreate.Handle)
		r.Get("/share/{id}", shareGet.Handle)
		r.Post("/share/{id}/consume", shareConsume.Handle)

		r.Route("/secure-notes", func(r chi.Router) {
			r.Post("/share", noteCreate.Handle)
			r.Get("/{id}", noteStatus.Handle)
			r.Post("/{id}/decrypt", noteDecrypt.Handle)
			r.Delete("/{id}", noteDelete.Handle)
		})
	})

	return r
}
