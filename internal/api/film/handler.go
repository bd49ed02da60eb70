package film

import (
	"context"
	"net/http"

	"gocine/internal/api/respond"
	"gocine/internal/domain"
	"gocine/internal/pkg/logger"
	"gocine/internal/service/filmservice"
)

// FilmService define o contrato que o Handler espera da camada de Serviço.
type FilmService interface {
	CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error)
	GetFilmByID(ctx context.Context, id int64) (domain.Film, error)
	ListFilms(ctx context.Context) ([]domain.Film, error)
	UpdateFilm(ctx context.Context, film domain.Film) (domain.Film, error)
	Like(ctx context.Context, filmID, userID int64) error
	Unlike(ctx context.Context, filmID, userID int64) error
	LikesOf(ctx context.Context, filmID int64) ([]int64, error)
	TopFilms(ctx context.Context, count int) ([]domain.Film, error)
}

// Handler agrupa os Handlers de filmes, curtidas e ranking.
type Handler struct {
	Service FilmService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc FilmService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateFilmHandler lida com a requisição POST /v1/films.
// @Summary Cria um novo filme
// @Tags films
// @Accept json
// @Produce json
// @Param film body domain.Film true "Dados do filme (likes é ignorado)"
// @Success 201 {object} domain.Film "Filme criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "MPA ou gênero inexistente"
// @Router /films [post]
func (h *Handler) CreateFilmHandler(w http.ResponseWriter, r *http.Request) {
	var f domain.Film
	if err := respond.Decode(r, &f); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateFilm(r.Context(), f)
	respond.Result(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateFilmHandler lida com a requisição PUT /v1/films (o ID vem no corpo).
// @Summary Atualiza um filme
// @Description Substitui o filme, a classificação e os gêneros; as curtidas permanecem.
// @Tags films
// @Accept json
// @Produce json
// @Param film body domain.Film true "Filme completo, com id"
// @Success 200 {object} domain.Film
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /films [put]
func (h *Handler) UpdateFilmHandler(w http.ResponseWriter, r *http.Request) {
	var f domain.Film
	if err := respond.Decode(r, &f); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateFilm(r.Context(), f)
	respond.Result(w, r, h.Logger, updated, err, http.StatusOK)
}

// ListFilmsHandler lida com a requisição GET /v1/films.
// @Summary Lista os filmes
// @Tags films
// @Produce json
// @Success 200 {array} domain.Film
// @Router /films [get]
func (h *Handler) ListFilmsHandler(w http.ResponseWriter, r *http.Request) {
	films, err := h.Service.ListFilms(r.Context())
	respond.Result(w, r, h.Logger, films, err, http.StatusOK)
}

// GetFilmByIDHandler lida com a requisição GET /v1/films/{id}.
// @Summary Obtém um filme por ID
// @Tags films
// @Produce json
// @Param id path int true "ID do filme"
// @Success 200 {object} domain.Film
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /films/{id} [get]
func (h *Handler) GetFilmByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	f, err := h.Service.GetFilmByID(r.Context(), id)
	respond.Result(w, r, h.Logger, f, err, http.StatusOK)
}

// PopularFilmsHandler lida com a requisição GET /v1/films/popular?count=N.
// @Summary Ranking de popularidade
// @Description Filmes por número de curtidas (decrescente, empate pelo menor ID). Sem curtidas, devolve o início do catálogo.
// @Tags films
// @Produce json
// @Param count query int false "Tamanho do ranking" default(10)
// @Success 200 {array} domain.Film
// @Failure 400 {object} domain.ErrorResponse "count inválido"
// @Router /films/popular [get]
func (h *Handler) PopularFilmsHandler(w http.ResponseWriter, r *http.Request) {
	count, err := respond.QueryInt(r, "count", filmservice.DefaultTopCount)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	films, err := h.Service.TopFilms(r.Context(), count)
	respond.Result(w, r, h.Logger, films, err, http.StatusOK)
}

// LikesHandler lida com a requisição GET /v1/films/{id}/likes.
// @Summary Lista quem curtiu o filme
// @Tags likes
// @Produce json
// @Param id path int true "ID do filme"
// @Success 200 {array} int
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /films/{id}/likes [get]
func (h *Handler) LikesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	likes, err := h.Service.LikesOf(r.Context(), id)
	respond.Result(w, r, h.Logger, likes, err, http.StatusOK)
}

// LikeHandler lida com a requisição PUT /v1/films/{id}/like/{userId}.
// @Summary Curte um filme
// @Tags likes
// @Param id path int true "ID do filme"
// @Param userId path int true "ID do usuário"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Filme ou usuário não encontrado"
// @Router /films/{id}/like/{userId} [put]
func (h *Handler) LikeHandler(w http.ResponseWriter, r *http.Request) {
	h.likeMutation(w, r, h.Service.Like)
}

// UnlikeHandler lida com a requisição DELETE /v1/films/{id}/like/{userId}.
// @Summary Remove a curtida
// @Tags likes
// @Param id path int true "ID do filme"
// @Param userId path int true "ID do usuário"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Filme ou usuário não encontrado"
// @Router /films/{id}/like/{userId} [delete]
func (h *Handler) UnlikeHandler(w http.ResponseWriter, r *http.Request) {
	h.likeMutation(w, r, h.Service.Unlike)
}

func (h *Handler) likeMutation(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64) error) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	userID, err := respond.PathID(r, "userId")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.Result(w, r, h.Logger, nil, op(r.Context(), id, userID), http.StatusNoContent)
}
