package book

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type listResponse struct {
	Books []Book `json:"books"`
}

type itemResponse struct {
	Book Book `json:"book"`
}

// Search handles GET /api/search?q=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	books, err := h.service.Search(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("search failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	log.Debug().Str("query", q).Int("matches", len(books)).Msg("search")
	httpx.JSON(w, http.StatusOK, listResponse{Books: books})
}

// GetByID handles GET /api/books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "Invalid book ID", nil)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "Book not found", nil)
			return
		}
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("get book failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, itemResponse{Book: b})
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c Candidate
	if err := httpx.DecodeJSON(r, &c); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	c = c.Trimmed()
	if details := httpx.ValidateStruct(c); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "Validation failed", details)
		return
	}

	b, err := h.service.Add(r.Context(), c)
	if err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			httpx.JSONError(w, r, http.StatusBadRequest, "Validation failed", []httpx.ErrorDetail{
				{Field: fieldErr.Field, Message: fieldErr.Message},
			})
			return
		}
		if errors.Is(err, ErrInvalidArgument) {
			httpx.JSONError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("add book failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "Failed to add book", nil)
		return
	}

	log.Info().Int("book_id", b.ID).Str("title", b.Title).Msg("book added")
	httpx.JSON(w, http.StatusCreated, itemResponse{Book: b})
}
