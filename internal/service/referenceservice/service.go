package referenceservice

import (
	"context"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
)

// Service expõe as consultas de classificação MPA e gêneros.
type Service struct {
	repo   domain.ReferenceRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Service de referências.
func NewService(repo domain.ReferenceRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) ListMpa(ctx context.Context) ([]domain.Mpa, error) {
	all, err := s.repo.FindAllMpa(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar MPA.", err)
		return nil, apperror.EnsureAppError("Falha interna ao listar MPA.", err)
	}
	return all, nil
}

func (s *Service) GetMpaByID(ctx context.Context, id int64) (domain.Mpa, error) {
	if id <= 0 {
		return domain.Mpa{}, apperror.NewValidationError("id deve ser um inteiro positivo")
	}
	mpa, err := s.repo.FindMpaByID(ctx, id)
	if err != nil {
		return domain.Mpa{}, apperror.EnsureAppError("Falha interna ao buscar MPA.", err)
	}
	return mpa, nil
}

func (s *Service) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	all, err := s.repo.FindAllGenres(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar gêneros.", err)
		return nil, apperror.EnsureAppError("Falha interna ao listar gêneros.", err)
	}
	return all, nil
}

func (s *Service) GetGenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	if id <= 0 {
		return domain.Genre{}, apperror.NewValidationError("id deve ser um inteiro positivo")
	}
	genre, err := s.repo.FindGenreByID(ctx, id)
	if err != nil {
		return domain.Genre{}, apperror.EnsureAppError("Falha interna ao buscar gênero.", err)
	}
	return genre, nil
}
