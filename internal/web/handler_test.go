package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
	"bookshelf/internal/coverurl"
	"bookshelf/internal/store"
	"bookshelf/internal/testutil"
)

const seedCatalog = `{"books":[
	{"id":1,"title":"Dune","author":"Frank Herbert","image":"https://m.media-amazon.com/images/I/81ym3QUd3KL.jpg"},
	{"id":2,"title":"Neuromancer","author":"William Gibson","image":"https://m.media-amazon.com/images/I/71Fp5bGbxqL.jpg"}
]}`

func newFileHandler(t *testing.T) (*Handler, *store.FileStore) {
	t.Helper()
	fileStore := store.NewFileStore(testutil.WriteFile(t, "books.json", seedCatalog))
	h, err := NewHandler(book.NewService(fileStore))
	require.NoError(t, err)
	return h, fileStore
}

func newMockHandler(t *testing.T) (*Handler, *book.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := book.NewMockRepository(ctrl)
	h, err := NewHandler(book.NewService(mockRepo))
	require.NoError(t, err)
	return h, mockRepo
}

func TestHandler_Search(t *testing.T) {
	h, _ := newFileHandler(t)

	tests := []struct {
		name        string
		path        string
		contains    []string
		notContains []string
	}{
		{
			name:        "initial state",
			path:        "/",
			contains:    []string{"Book Search", `href="/add-book"`},
			notContains: []string{"No books found", msgEmptyQuery},
		},
		{
			name:     "blank query asks for a term",
			path:     "/?q=+++",
			contains: []string{msgEmptyQuery},
		},
		{
			name:        "matches",
			path:        "/?q=gibson",
			contains:    []string{"Neuromancer", `href="/book/2"`},
			notContains: []string{"Dune", "No books found"},
		},
		{
			name:     "no matches",
			path:     "/?q=tolkien",
			contains: []string{"No books found", "Try a different search term", `value="tolkien"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Search(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHandler_Search_Failure(t *testing.T) {
	h, mockRepo := newMockHandler(t)
	mockRepo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("boom"))

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/?q=dune", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgSearchFailed)
	assert.NotContains(t, w.Body.String(), "No books found")
}

func TestHandler_Detail(t *testing.T) {
	h, _ := newFileHandler(t)

	tests := []struct {
		name     string
		id       string
		status   int
		contains []string
	}{
		{name: "found", id: "1", status: http.StatusOK, contains: []string{"<h1>Dune</h1>", "by Frank Herbert", "81ym3QUd3KL.jpg"}},
		{name: "missing", id: "42", status: http.StatusNotFound, contains: []string{"Book not found", "Back to search"}},
		{name: "not an integer", id: "dune", status: http.StatusBadRequest, contains: []string{"Book not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/book/"+tt.id, nil)
			r.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			h.Detail(w, r)

			assert.Equal(t, tt.status, w.Code)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHandler_Detail_Failure(t *testing.T) {
	h, mockRepo := newMockHandler(t)
	mockRepo.EXPECT().ListAll(gomock.Any()).Return(nil, &book.StorageError{Op: "read", Err: errors.New("eio")})

	r := httptest.NewRequest(http.MethodGet, "/book/1", nil)
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Detail(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgLoadFailed)
}

func TestHandler_AddForm(t *testing.T) {
	h, _ := newFileHandler(t)

	w := httptest.NewRecorder()
	h.AddForm(w, httptest.NewRequest(http.MethodGet, "/add-book", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<form id="add-book" method="post" action="/add-book"`)
	assert.Contains(t, body, `src="/static/add-book.js"`)
	assert.Contains(t, body, `data-cover-pattern="^https://m\.media-amazon\.com/images/`)
	assert.Contains(t, body, `id="form-error" class="alert" hidden`)
}

func TestHandler_AddSubmit(t *testing.T) {
	h, fileStore := newFileHandler(t)
	image := "https://m.media-amazon.com/images/G/123/pv_starlight/xyz.png?x=1"

	t.Run("success redirects to search", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.AddSubmit(w, testutil.NewFormRequest("/add-book", url.Values{
			"title":  {"Count Zero"},
			"author": {"William Gibson"},
			"image":  {image},
		}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		books, err := fileStore.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, book.Book{ID: 3, Title: "Count Zero", Author: "William Gibson", Image: image}, books[2])
	})

	t.Run("invalid cover keeps input", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.AddSubmit(w, testutil.NewFormRequest("/add-book", url.Values{
			"title":  {"Mona Lisa Overdrive"},
			"author": {"William Gibson"},
			"image":  {"https://m.media-amazon.com/images/I/abc.gif"},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Please enter a valid Amazon media image URL")
		assert.Contains(t, body, `value="Mona Lisa Overdrive"`)

		books, err := fileStore.ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("missing title", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.AddSubmit(w, testutil.NewFormRequest("/add-book", url.Values{
			"author": {"William Gibson"},
			"image":  {image},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")
	})
}

func TestHandler_AddSubmit_StorageFailure(t *testing.T) {
	h, mockRepo := newMockHandler(t)
	mockRepo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(book.Book{}, &book.StorageError{Op: "write", Err: errors.New("disk full")})

	w := httptest.NewRecorder()
	h.AddSubmit(w, testutil.NewFormRequest("/add-book", url.Values{
		"title":  {"T"},
		"author": {"A"},
		"image":  {"https://m.media-amazon.com/images/I/abc123.jpg"},
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An error occurred while adding the book. Please try again.")
}

func TestHandler_AddSubmit_RejectedShowsMessage(t *testing.T) {
	h, mockRepo := newMockHandler(t)
	mockRepo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(book.Book{}, &book.FieldError{Field: "title", Message: "Title is too long"})

	w := httptest.NewRecorder()
	h.AddSubmit(w, testutil.NewFormRequest("/add-book", url.Values{
		"title":  {"Snow Crash"},
		"author": {"Neal Stephenson"},
		"image":  {"https://m.media-amazon.com/images/I/abc123.jpg"},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Title is too long")
	assert.NotContains(t, body, msgAddFailed)
	assert.Contains(t, body, `value="Snow Crash"`)
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(Static())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/add-book.js")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "coverPattern")
}

func TestCoverPatternIsBrowserCompatible(t *testing.T) {
	// The browser builds the expression with the "i" flag itself.
	assert.NotContains(t, coverurl.Source, "(?i)")
	assert.NotContains(t, coverurl.Source, `\z`)
}
