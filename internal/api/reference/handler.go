package reference

import (
	"context"
	"net/http"

	"gocine/internal/api/respond"
	"gocine/internal/domain"
	"gocine/internal/pkg/logger"
)

// ReferenceService define o contrato que o Handler espera da camada de Serviço.
type ReferenceService interface {
	ListMpa(ctx context.Context) ([]domain.Mpa, error)
	GetMpaByID(ctx context.Context, id int64) (domain.Mpa, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GetGenreByID(ctx context.Context, id int64) (domain.Genre, error)
}

// Handler expõe as consultas de MPA e gêneros.
type Handler struct {
	Service ReferenceService
	Logger  logger.Logger
}

func NewHandler(svc ReferenceService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListMpaHandler lida com GET /v1/mpa.
// @Summary Lista as classificações MPA
// @Tags reference
// @Produce json
// @Success 200 {array} domain.Mpa
// @Router /mpa [get]
func (h *Handler) ListMpaHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.ListMpa(r.Context())
	respond.Result(w, r, h.Logger, all, err, http.StatusOK)
}

// GetMpaHandler lida com GET /v1/mpa/{id}.
// @Summary Obtém uma classificação MPA
// @Tags reference
// @Produce json
// @Param id path int true "ID da classificação"
// @Success 200 {object} domain.Mpa
// @Failure 404 {object} domain.ErrorResponse "MPA não encontrado"
// @Router /mpa/{id} [get]
func (h *Handler) GetMpaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	mpa, err := h.Service.GetMpaByID(r.Context(), id)
	respond.Result(w, r, h.Logger, mpa, err, http.StatusOK)
}

// ListGenresHandler lida com GET /v1/genres.
// @Summary Lista os gêneros
// @Tags reference
// @Produce json
// @Success 200 {array} domain.Genre
// @Router /genres [get]
func (h *Handler) ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.ListGenres(r.Context())
	respond.Result(w, r, h.Logger, all, err, http.StatusOK)
}

// GetGenreHandler lida com GET /v1/genres/{id}.
// @Summary Obtém um gênero
// @Tags reference
// @Produce json
// @Param id path int true "ID do gênero"
// @Success 200 {object} domain.Genre
// @Failure 404 {object} domain.ErrorResponse "Gênero não encontrado"
// @Router /genres/{id} [get]
func (h *Handler) GetGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	genre, err := h.Service.GetGenreByID(r.Context(), id)
	respond.Result(w, r, h.Logger, genre, err, http.StatusOK)
}
