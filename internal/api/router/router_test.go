package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocine/internal/api/film"
	"gocine/internal/api/reference"
	"gocine/internal/api/router"
	"gocine/internal/api/user"
	"gocine/internal/domain"
	"gocine/internal/pkg/cache"
	"gocine/internal/pkg/logger"
	"gocine/internal/repository/memory"
	"gocine/internal/service/filmservice"
	"gocine/internal/service/referenceservice"
	"gocine/internal/service/userservice"
)

func newTestRouter(t *testing.T, limit router.RateLimit) http.Handler {
	t.Helper()
	log := logger.NewNop()
	store := memory.NewStore()
	users, films, refs := store.Users(), store.Films(), store.References()

	userSvc := userservice.NewService(users, users, log)
	filmSvc := filmservice.NewService(films, films, users, refs, log)
	refSvc := referenceservice.NewService(refs, log)

	return router.NewRouter(
		user.NewHandler(userSvc, log),
		film.NewHandler(filmSvc, log),
		reference.NewHandler(refSvc, log),
		limit,
		log,
	)
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestPing(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	rec := call(t, h, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestUserAndFriendshipFlow(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	for _, login := range []string{"ana", "bruno", "carla"} {
		rec := call(t, h, http.MethodPost, "/v1/users/",
			`{"email":"`+login+`@mail.com","login":"`+login+`","name":"","birthday":"1990-01-01"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created domain.User
	decode(t, call(t, h, http.MethodGet, "/v1/users/1", ""), &created)
	assert.Equal(t, "ana", created.Name, "nome em branco assume o login")

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/users/1/friends/2", "").Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/users/1/friends/3", "").Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/users/3/friends/2", "").Code)

	var friends []domain.User
	decode(t, call(t, h, http.MethodGet, "/v1/users/1/friends", ""), &friends)
	require.Len(t, friends, 2)
	assert.Equal(t, int64(2), friends[0].ID)
	assert.Equal(t, int64(3), friends[1].ID)

	var common []domain.User
	decode(t, call(t, h, http.MethodGet, "/v1/users/1/friends/common/3", ""), &common)
	require.Len(t, common, 1)
	assert.Equal(t, int64(2), common[0].ID)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, "/v1/users/1/friends/2", "").Code)
	decode(t, call(t, h, http.MethodGet, "/v1/users/2/friends", ""), &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, int64(3), friends[0].ID)
}

func TestUserErrors(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCat    string
	}{
		{"email sem arroba", http.MethodPost, "/v1/users/", `{"email":"x","login":"x","birthday":"1990-01-01"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"json malformado", http.MethodPost, "/v1/users/", `{"email":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"usuário inexistente", http.MethodGet, "/v1/users/42", "", http.StatusNotFound, "NOT_FOUND"},
		{"id não numérico", http.MethodGet, "/v1/users/abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"amizade consigo mesmo", http.MethodPut, "/v1/users/1/friends/1", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"update sem usuário", http.MethodPut, "/v1/users/", `{"id":9,"email":"a@b","login":"a","birthday":"1990-01-01"}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, h, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var resp domain.ErrorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.wantCat, resp.Category)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	rec := call(t, h, http.MethodGet, "/v1/films/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp domain.ErrorResponse
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
}

func TestFilmLikesAndPopularity(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	for _, login := range []string{"u1", "u2"} {
		rec := call(t, h, http.MethodPost, "/v1/users/",
			`{"email":"`+login+`@mail.com","login":"`+login+`","birthday":"1990-01-01"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	for _, name := range []string{"A", "B", "C"} {
		rec := call(t, h, http.MethodPost, "/v1/films/",
			`{"name":"`+name+`","description":"d","releaseDate":"2000-01-01","duration":90,"mpa":{"id":1},"genres":[{"id":2},{"id":1},{"id":2}]}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var f domain.Film
	decode(t, call(t, h, http.MethodGet, "/v1/films/1", ""), &f)
	require.Len(t, f.Genres, 2)
	assert.Equal(t, int64(1), f.Genres[0].ID)
	assert.Equal(t, "Комедия", f.Genres[0].Name)
	require.NotNil(t, f.Mpa)
	assert.Equal(t, "G", f.Mpa.Name)

	// sem curtidas: ranking devolve o início do catálogo
	var top []domain.Film
	decode(t, call(t, h, http.MethodGet, "/v1/films/popular?count=2", ""), &top)
	require.Len(t, top, 2)
	assert.Equal(t, int64(1), top[0].ID)
	assert.Equal(t, int64(2), top[1].ID)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/films/3/like/1", "").Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/films/3/like/2", "").Code)
	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/v1/films/2/like/1", "").Code)

	decode(t, call(t, h, http.MethodGet, "/v1/films/popular", ""), &top)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, []int64{1, 2}, top[0].Likes)

	var likes []int64
	decode(t, call(t, h, http.MethodGet, "/v1/films/3/likes", ""), &likes)
	assert.Equal(t, []int64{1, 2}, likes)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, "/v1/films/3/like/1", "").Code)
	decode(t, call(t, h, http.MethodGet, "/v1/films/3/likes", ""), &likes)
	assert.Equal(t, []int64{2}, likes)

	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodPut, "/v1/films/3/like/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodGet, "/v1/films/popular?count=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodGet, "/v1/films/popular?count=abc", "").Code)
}

func TestFilmValidation(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	rec := call(t, h, http.MethodPost, "/v1/films/",
		`{"name":"Antes","description":"d","releaseDate":"1895-12-27","duration":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h, http.MethodPost, "/v1/films/",
		`{"name":"Longo","description":"`+strings.Repeat("a", 201)+`","releaseDate":"2000-01-01","duration":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h, http.MethodPost, "/v1/films/",
		`{"name":"Sem MPA","description":"d","releaseDate":"2000-01-01","duration":10,"mpa":{"id":99}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceRoutes(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})

	var mpa []domain.Mpa
	decode(t, call(t, h, http.MethodGet, "/v1/mpa", ""), &mpa)
	assert.Len(t, mpa, 5)

	var genre domain.Genre
	decode(t, call(t, h, http.MethodGet, "/v1/genres/1", ""), &genre)
	assert.Equal(t, int64(1), genre.ID)

	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/v1/mpa/9", "").Code)
}

func TestRateLimitAppliesToV1Only(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := cache.NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	h := newTestRouter(t, router.RateLimit{Cache: client, MaxRequests: 2, Period: time.Minute})

	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/v1/mpa", "").Code)
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/v1/mpa", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(t, h, http.MethodGet, "/v1/mpa", "").Code)

	// health check fica fora do limitador
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/ping", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, router.RateLimit{})
	call(t, h, http.MethodGet, "/v1/genres", "")

	rec := call(t, h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
