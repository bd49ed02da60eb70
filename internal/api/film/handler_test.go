package film_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gocine/internal/api/film"
	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
)

type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Film), args.Error(1)
}

func (m *MockFilmService) GetFilmByID(ctx context.Context, id int64) (domain.Film, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Film), args.Error(1)
}

func (m *MockFilmService) ListFilms(ctx context.Context) ([]domain.Film, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Film), args.Error(1)
}

func (m *MockFilmService) UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Film), args.Error(1)
}

func (m *MockFilmService) Like(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *MockFilmService) Unlike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *MockFilmService) LikesOf(ctx context.Context, filmID int64) ([]int64, error) {
	args := m.Called(ctx, filmID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockFilmService) TopFilms(ctx context.Context, count int) ([]domain.Film, error) {
	args := m.Called(ctx, count)
	return args.Get(0).([]domain.Film), args.Error(1)
}

func serve(h *film.Handler, method, pattern, target string, fn http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, fn)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestPopularFilmsHandler_DefaultCount(t *testing.T) {
	svc := new(MockFilmService)
	h := film.NewHandler(svc, logger.NewNop())
	svc.On("TopFilms", mock.Anything, 10).Return([]domain.Film{{ID: 7, Name: "X"}}, nil).Once()

	rec := serve(h, http.MethodGet, "/films/popular", "/films/popular", h.PopularFilmsHandler)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Film
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got[0].ID)
	svc.AssertExpectations(t)
}

func TestGetFilmByIDHandler_InternalError(t *testing.T) {
	svc := new(MockFilmService)
	h := film.NewHandler(svc, logger.NewNop())
	svc.On("GetFilmByID", mock.Anything, int64(3)).
		Return(domain.Film{}, apperror.NewInternalError("falha", errors.New("conexão perdida"))).Once()

	rec := serve(h, http.MethodGet, "/films/{id}", "/films/3", h.GetFilmByIDHandler)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Category)
	svc.AssertExpectations(t)
}

func TestLikeHandler_ParsesBothIDs(t *testing.T) {
	svc := new(MockFilmService)
	h := film.NewHandler(svc, logger.NewNop())
	svc.On("Like", mock.Anything, int64(4), int64(9)).Return(nil).Once()

	rec := serve(h, http.MethodPut, "/films/{id}/like/{userId}", "/films/4/like/9", h.LikeHandler)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestUnlikeHandler_RejectsNonNumericUser(t *testing.T) {
	svc := new(MockFilmService)
	h := film.NewHandler(svc, logger.NewNop())

	rec := serve(h, http.MethodDelete, "/films/{id}/like/{userId}", "/films/4/like/abc", h.UnlikeHandler)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Unlike", mock.Anything, mock.Anything, mock.Anything)
}
