package filmrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/cache"
	"gocine/internal/pkg/logger"
	"gocine/internal/pkg/metrics"
)

// FilmRepository implementa domain.FilmRepository e domain.LikeRepository sobre o PostgreSQL,
// com cache-aside (Redis) na busca por ID.
type FilmRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente de cache; nil desativa o cache
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

var (
	_ domain.FilmRepository = (*FilmRepository)(nil)
	_ domain.LikeRepository = (*FilmRepository)(nil)
)

// NewFilmRepository cria e retorna uma nova instância do Repositório de Filmes.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewFilmRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *FilmRepository {
	return &FilmRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Define a chave de cache para filmes.
const filmCacheKey = "film:%d"

const filmSelect = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
	       m.id, m.name, g.id, g.name
	FROM films f
	LEFT JOIN mpa m ON m.id = f.mpa_id
	LEFT JOIN film_genres fg ON fg.film_id = f.id
	LEFT JOIN genres g ON g.id = fg.genre_id`

const filmOrder = ` ORDER BY f.id, g.id`

const insertGenresSQL = `
	INSERT INTO film_genres (film_id, genre_id)
	SELECT $1, UNNEST($2::bigint[])
	ON CONFLICT DO NOTHING`

func mpaID(film domain.Film) sql.NullInt64 {
	if film.Mpa == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: film.Mpa.ID, Valid: true}
}

// Save persiste o filme e seus gêneros numa única transação.
func (r *FilmRepository) Save(ctx context.Context, film domain.Film) (domain.Film, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	const filmSQL = `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err = tx.QueryRowContext(ctxTimeout, filmSQL,
		film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film),
	).Scan(&film.ID)
	if err != nil {
		return domain.Film{}, r.translate("Falha ao inserir filme", err)
	}

	if len(film.Genres) > 0 {
		if _, err = tx.ExecContext(ctxTimeout, insertGenresSQL, film.ID, pq.Array(film.GenreIDs())); err != nil {
			return domain.Film{}, r.translate("Falha ao inserir gêneros do filme", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Debug("Filme inserido.", map[string]interface{}{"film_id": film.ID})
	film.Likes = []int64{}
	return film, nil
}

// FindByID busca um filme pelo ID, utilizando a estratégia Cache-Aside.
// O cache guarda só o filme, a classificação e os gêneros; as curtidas vêm sempre do ledger.
func (r *FilmRepository) FindByID(ctx context.Context, id int64) (domain.Film, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(filmCacheKey, id)

	// --- 1. Cache-Aside (READ) ---
	film, ok := r.readCache(ctxTimeout, key)
	if !ok {
		// --- 2. Busca no Banco de Dados ---
		films, err := r.loadFilms(ctxTimeout, filmSelect+` WHERE f.id = $1`+filmOrder, id)
		if err != nil {
			return domain.Film{}, err
		}
		if len(films) == 0 {
			return domain.Film{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado", id))
		}
		film = films[0]

		// --- 3. Cache-Aside (WRITE) ---
		r.writeCache(ctxTimeout, key, film)
	}

	// --- 4. Curtidas atuais ---
	film.Likes = []int64{}
	one := []domain.Film{film}
	if err := r.attachLikes(ctxTimeout, one); err != nil {
		return domain.Film{}, err
	}
	return one[0], nil
}

// FindByIDs devolve os filmes na ordem de ids; IDs inexistentes são ignorados.
func (r *FilmRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	if len(ids) == 0 {
		return []domain.Film{}, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	films, err := r.queryFilms(ctxTimeout, filmSelect+` WHERE f.id = ANY($1)`+filmOrder, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}
	ordered := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

func (r *FilmRepository) FindAll(ctx context.Context) ([]domain.Film, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.queryFilms(ctxTimeout, filmSelect+filmOrder)
}

// FindFirst devolve os primeiros filmes por ordem de criação.
func (r *FilmRepository) FindFirst(ctx context.Context, limit int) ([]domain.Film, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := filmSelect + ` WHERE f.id IN (SELECT id FROM films ORDER BY id LIMIT $1)` + filmOrder
	return r.queryFilms(ctxTimeout, query, limit)
}

// Update substitui o filme, a classificação e o conjunto de gêneros numa transação.
// As curtidas não são tocadas.
func (r *FilmRepository) Update(ctx context.Context, film domain.Film) (domain.Film, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	const updateSQL = `
		UPDATE films
		SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
		WHERE id = $6`

	result, err := tx.ExecContext(ctxTimeout, updateSQL,
		film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film), film.ID,
	)
	if err != nil {
		return domain.Film{}, r.translate("Falha ao atualizar filme", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return domain.Film{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado", film.ID))
	}

	if _, err = tx.ExecContext(ctxTimeout, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao limpar gêneros do filme", err)
	}
	if len(film.Genres) > 0 {
		if _, err = tx.ExecContext(ctxTimeout, insertGenresSQL, film.ID, pq.Array(film.GenreIDs())); err != nil {
			return domain.Film{}, r.translate("Falha ao inserir gêneros do filme", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Film{}, apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.invalidate(ctx, film.ID)
	return film, nil
}

// queryFilms executa a consulta agregada e anexa as curtidas de cada filme.
func (r *FilmRepository) queryFilms(ctx context.Context, query string, args ...interface{}) ([]domain.Film, error) {
	films, err := r.loadFilms(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return films, nil
	}
	if err := r.attachLikes(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// loadFilms executa a consulta agregada (filme, MPA e gêneros), sem curtidas.
func (r *FilmRepository) loadFilms(ctx context.Context, query string, args ...interface{}) ([]domain.Film, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar filmes no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar filmes", err)
	}
	defer rows.Close()

	var flat []filmRow
	for rows.Next() {
		var fr filmRow
		if err := rows.Scan(
			&fr.ID, &fr.Name, &fr.Description, &fr.ReleaseDate, &fr.Duration,
			&fr.MpaID, &fr.MpaName, &fr.GenreID, &fr.GenreName,
		); err != nil {
			return nil, apperror.NewDBError("Falha ao ler filme", err)
		}
		flat = append(flat, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao ler filmes", err)
	}
	return aggregateFilms(flat), nil
}

// translate converte violação de FK (MPA/gênero inexistente) em NotFoundError.
func (r *FilmRepository) translate(msg string, err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return apperror.NewNotFoundError("Referência inexistente (MPA, gênero, filme ou usuário)")
	}
	r.logger.Error(msg+".", err)
	return apperror.NewDBError(msg, err)
}

func (r *FilmRepository) readCache(ctx context.Context, key string) (domain.Film, bool) {
	if r.Cache == nil {
		return domain.Film{}, false
	}

	cached, err := r.Cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			// Falha real de cache (ex: conexão perdida): seguimos para o DB.
			metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
			r.logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
			return domain.Film{}, false
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Film{}, false
	}

	var film domain.Film
	if err := json.Unmarshal([]byte(cached), &film); err != nil {
		r.logger.Warn("Entrada de cache inválida.", map[string]interface{}{"key": key, "error": err.Error()})
		return domain.Film{}, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return film, true
}

func (r *FilmRepository) writeCache(ctx context.Context, key string, film domain.Film) {
	if r.Cache == nil {
		return
	}
	film.Likes = nil
	data, err := json.Marshal(film)
	if err != nil {
		r.logger.Warn("Falha ao serializar filme para cache.", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// invalidate remove o filme do cache após uma atualização.
func (r *FilmRepository) invalidate(ctx context.Context, filmID int64) {
	if r.Cache == nil {
		return
	}
	key := fmt.Sprintf(filmCacheKey, filmID)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache do filme.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
