// Package web renders the HTML views: search, book detail and the add-book
// form. Pages are server-rendered; the only script is the cover URL check
// on the form.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"bookshelf/internal/book"
	"bookshelf/internal/coverurl"
	"bookshelf/internal/httpx"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	msgEmptyQuery   = "Please enter a search term"
	msgSearchFailed = "An error occurred while searching"
	msgLoadFailed   = "Something went wrong while loading this book"
	msgAddFailed    = "An error occurred while adding the book. Please try again."
)

// Handler serves the HTML views on top of the book service.
type Handler struct {
	service *book.Service
	pages   map[string]*template.Template
}

func NewHandler(service *book.Service) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"search", "detail", "add"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return &Handler{service: service, pages: pages}, nil
}

// Static serves the stylesheet and form script.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

type searchPage struct {
	Query    string
	Searched bool
	Books    []book.Book
	Error    string
}

type detailPage struct {
	Book  *book.Book
	Error string
}

type addPage struct {
	Form         book.Candidate
	Error        string
	CoverPattern string
	CoverHint    string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", page).Str("request_id", httpx.RequestIDFrom(r)).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Search handles GET /. Without a q parameter the page is in its initial
// state; a present but blank q asks for a term.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if _, ok := values["q"]; !ok {
		h.render(w, r, http.StatusOK, "search", searchPage{})
		return
	}

	data := searchPage{Query: values.Get("q")}
	if strings.TrimSpace(data.Query) == "" {
		data.Error = msgEmptyQuery
		h.render(w, r, http.StatusOK, "search", data)
		return
	}

	books, err := h.service.Search(r.Context(), data.Query)
	if err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("search failed")
		data.Error = msgSearchFailed
		h.render(w, r, http.StatusInternalServerError, "search", data)
		return
	}

	log.Debug().Str("query", data.Query).Int("matches", len(books)).Msg("search")
	data.Searched = true
	data.Books = books
	h.render(w, r, http.StatusOK, "search", data)
}

// Detail handles GET /book/{id}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := book.ParseID(r.PathValue("id"))
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "detail", detailPage{})
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			h.render(w, r, http.StatusNotFound, "detail", detailPage{})
			return
		}
		log.Error().Err(err).Int("book_id", id).Str("request_id", httpx.RequestIDFrom(r)).Msg("load book failed")
		h.render(w, r, http.StatusInternalServerError, "detail", detailPage{Error: msgLoadFailed})
		return
	}
	h.render(w, r, http.StatusOK, "detail", detailPage{Book: &b})
}

func newAddPage(form book.Candidate, message string) addPage {
	return addPage{
		Form:         form,
		Error:        message,
		CoverPattern: coverurl.Source,
		CoverHint:    coverurl.Hint,
	}
}

// AddForm handles GET /add-book
func (h *Handler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add", newAddPage(book.Candidate{}, ""))
}

// AddSubmit handles POST /add-book and redirects to the search page when
// the book was stored.
func (h *Handler) AddSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "add", newAddPage(book.Candidate{}, msgAddFailed))
		return
	}

	c := book.Candidate{
		Title:  r.PostFormValue("title"),
		Author: r.PostFormValue("author"),
		Image:  r.PostFormValue("image"),
	}.Trimmed()

	if details := httpx.ValidateStruct(c); len(details) > 0 {
		h.render(w, r, http.StatusBadRequest, "add", newAddPage(c, details[0].Message))
		return
	}

	b, err := h.service.Add(r.Context(), c)
	if err != nil {
		var fieldErr *book.FieldError
		switch {
		case errors.As(err, &fieldErr):
			h.render(w, r, http.StatusBadRequest, "add", newAddPage(c, fieldErr.Message))
		case errors.Is(err, book.ErrInvalidArgument):
			h.render(w, r, http.StatusBadRequest, "add", newAddPage(c, err.Error()))
		default:
			log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("add book failed")
			h.render(w, r, http.StatusInternalServerError, "add", newAddPage(c, msgAddFailed))
		}
		return
	}

	log.Info().Int("book_id", b.ID).Str("title", b.Title).Msg("book added")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
