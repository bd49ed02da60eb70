package memory

import (
	"context"
	"fmt"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
)

// ReferenceRepository implementa domain.ReferenceRepository sobre o Store.
type ReferenceRepository struct {
	s *Store
}

var _ domain.ReferenceRepository = (*ReferenceRepository)(nil)

func (r *ReferenceRepository) FindAllMpa(ctx context.Context) ([]domain.Mpa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Mpa{}, r.s.mpa...), nil
}

func (r *ReferenceRepository) FindMpaByID(ctx context.Context, id int64) (domain.Mpa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.mpa {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Mpa{}, apperror.NewNotFoundError(fmt.Sprintf("MPA com ID %d não encontrado", id))
}

func (r *ReferenceRepository) FindAllGenres(ctx context.Context) ([]domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Genre{}, r.s.genres...), nil
}

func (r *ReferenceRepository) FindGenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %d não encontrado", id))
}
