package domain

import "context"

// Mpa é a classificação indicativa (Motion Picture Association) de um filme.
type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre é um gênero cinematográfico.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ReferenceRepository expõe os dados de referência estáticos (somente leitura).
type ReferenceRepository interface {
	FindAllMpa(ctx context.Context) ([]Mpa, error)
	FindMpaByID(ctx context.Context, id int64) (Mpa, error)
	FindAllGenres(ctx context.Context) ([]Genre, error)
	FindGenreByID(ctx context.Context, id int64) (Genre, error)
}
