package referencerepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
)

// ReferenceRepository lê as tabelas estáticas mpa e genres.
type ReferenceRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

var _ domain.ReferenceRepository = (*ReferenceRepository)(nil)

// NewReferenceRepository cria e retorna uma nova instância do Repositório de Referências.
func NewReferenceRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ReferenceRepository {
	return &ReferenceRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

func (r *ReferenceRepository) FindAllMpa(ctx context.Context) ([]domain.Mpa, error) {
	pairs, err := r.listPairs(ctx, "mpa")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Mpa, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Mpa{ID: p.id, Name: p.name})
	}
	return out, nil
}

func (r *ReferenceRepository) FindMpaByID(ctx context.Context, id int64) (domain.Mpa, error) {
	p, err := r.findPair(ctx, "mpa", id)
	if err != nil {
		return domain.Mpa{}, err
	}
	return domain.Mpa{ID: p.id, Name: p.name}, nil
}

func (r *ReferenceRepository) FindAllGenres(ctx context.Context) ([]domain.Genre, error) {
	pairs, err := r.listPairs(ctx, "genres")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Genre, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Genre{ID: p.id, Name: p.name})
	}
	return out, nil
}

func (r *ReferenceRepository) FindGenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	p, err := r.findPair(ctx, "genres", id)
	if err != nil {
		return domain.Genre{}, err
	}
	return domain.Genre{ID: p.id, Name: p.name}, nil
}

type pair struct {
	id   int64
	name string
}

// tableLabel é usado nas mensagens de erro; as tabelas são fixas, nunca vêm do cliente.
var tableLabel = map[string]string{
	"mpa":    "MPA",
	"genres": "Gênero",
}

func (r *ReferenceRepository) listPairs(ctx context.Context, table string) ([]pair, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, table)
	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar dados de referência.", err)
		return nil, apperror.NewDBError("Falha ao listar "+tableLabel[table], err)
	}
	defer rows.Close()

	out := make([]pair, 0)
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.id, &p.name); err != nil {
			return nil, apperror.NewDBError("Falha ao ler "+tableLabel[table], err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao ler "+tableLabel[table], err)
	}
	return out, nil
}

func (r *ReferenceRepository) findPair(ctx context.Context, table string, id int64) (pair, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, table)

	var p pair
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(&p.id, &p.name)
	if errors.Is(err, sql.ErrNoRows) {
		return pair{}, apperror.NewNotFoundError(fmt.Sprintf("%s com ID %d não encontrado", tableLabel[table], id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar dado de referência.", err)
		return pair{}, apperror.NewDBError("Falha ao buscar "+tableLabel[table], err)
	}
	return p, nil
}
