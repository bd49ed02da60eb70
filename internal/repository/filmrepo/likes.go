package filmrepo

import (
	"context"

	"github.com/lib/pq"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
)

// AddLike registra a curtida; repetir a mesma curtida não é erro.
func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		INSERT INTO likes (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, user_id) DO NOTHING`

	if _, err := r.DB.ExecContext(ctxTimeout, query, filmID, userID); err != nil {
		return r.translate("Falha ao registrar curtida", err)
	}
	return nil
}

// RemoveLike apaga a curtida; apagar uma curtida inexistente não é erro.
func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`

	if _, err := r.DB.ExecContext(ctxTimeout, query, filmID, userID); err != nil {
		r.logger.Error("Falha ao remover curtida.", err)
		return apperror.NewDBError("Falha ao remover curtida", err)
	}
	return nil
}

// FindLikes devolve os IDs dos usuários que curtiram o filme, em ordem crescente.
func (r *FilmRepository) FindLikes(ctx context.Context, filmID int64) ([]int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT user_id FROM likes WHERE film_id = $1 ORDER BY user_id`
	return r.queryIDs(ctxTimeout, "Falha ao listar curtidas", query, filmID)
}

// PopularFilmIDs ordena os filmes curtidos por contagem decrescente e ID crescente.
func (r *FilmRepository) PopularFilmIDs(ctx context.Context, limit int) ([]int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT film_id
		FROM likes
		GROUP BY film_id
		ORDER BY COUNT(*) DESC, film_id ASC
		LIMIT $1`
	return r.queryIDs(ctxTimeout, "Falha ao calcular filmes populares", query, limit)
}

// attachLikes preenche Film.Likes com uma única consulta para todos os filmes.
func (r *FilmRepository) attachLikes(ctx context.Context, films []domain.Film) error {
	ids := make([]int64, 0, len(films))
	index := make(map[int64]int, len(films))
	for i, f := range films {
		ids = append(ids, f.ID)
		index[f.ID] = i
	}

	const query = `
		SELECT film_id, user_id
		FROM likes
		WHERE film_id = ANY($1)
		ORDER BY film_id, user_id`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Falha ao buscar curtidas dos filmes.", err)
		return apperror.NewDBError("Falha ao buscar curtidas", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID, userID int64
		if err := rows.Scan(&filmID, &userID); err != nil {
			return apperror.NewDBError("Falha ao ler curtida", err)
		}
		if i, ok := index[filmID]; ok {
			films[i].Likes = append(films[i].Likes, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewDBError("Falha ao ler curtidas", err)
	}
	return nil
}

func (r *FilmRepository) queryIDs(ctx context.Context, failMsg, query string, args ...interface{}) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error(failMsg+".", err)
		return nil, apperror.NewDBError(failMsg, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewDBError(failMsg, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError(failMsg, err)
	}
	return ids, nil
}
