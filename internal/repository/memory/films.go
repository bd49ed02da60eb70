package memory

import (
	"context"
	"sort"

	"gocine/internal/domain"
)

// FilmRepository implementa domain.FilmRepository e domain.LikeRepository sobre o Store.
type FilmRepository struct {
	s *Store
}

var (
	_ domain.FilmRepository = (*FilmRepository)(nil)
	_ domain.LikeRepository = (*FilmRepository)(nil)
)

// Save grava o filme; curtidas enviadas junto são ignoradas.
func (r *FilmRepository) Save(ctx context.Context, film domain.Film) (domain.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextFilmID++
	film.ID = r.s.nextFilmID
	film.Likes = nil
	r.s.films[film.ID] = film
	r.s.filmOrder = append(r.s.filmOrder, film.ID)
	return r.s.filmView(film), nil
}

func (r *FilmRepository) FindByID(ctx context.Context, id int64) (domain.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.films[id]
	if !ok {
		return domain.Film{}, filmNotFound(id)
	}
	return r.s.filmView(f), nil
}

func (r *FilmRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.s.films[id]; ok {
			out = append(out, r.s.filmView(f))
		}
	}
	return out, nil
}

func (r *FilmRepository) FindAll(ctx context.Context) ([]domain.Film, error) {
	return r.first(-1), nil
}

func (r *FilmRepository) FindFirst(ctx context.Context, limit int) ([]domain.Film, error) {
	return r.first(limit), nil
}

// first devolve os filmes em ordem de criação; limit < 0 devolve todos.
func (r *FilmRepository) first(limit int) []domain.Film {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.filmOrder
	if limit >= 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.filmView(r.s.films[id]))
	}
	return out
}

// Update substitui o filme por completo, exceto as curtidas.
func (r *FilmRepository) Update(ctx context.Context, film domain.Film) (domain.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.films[film.ID]; !ok {
		return domain.Film{}, filmNotFound(film.ID)
	}
	film.Likes = nil
	r.s.films[film.ID] = film
	return r.s.filmView(film), nil
}

func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	set, ok := r.s.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		r.s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	if set, ok := r.s.likes[filmID]; ok {
		delete(set, userID)
		if len(set) == 0 {
			delete(r.s.likes, filmID)
		}
	}
	return nil
}

func (r *FilmRepository) FindLikes(ctx context.Context, filmID int64) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.films[filmID]; !ok {
		return nil, filmNotFound(filmID)
	}
	return r.s.sortedLikes(filmID), nil
}

// PopularFilmIDs ordena os filmes curtidos por contagem decrescente e ID crescente.
func (r *FilmRepository) PopularFilmIDs(ctx context.Context, limit int) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type ranked struct {
		id    int64
		count int
	}
	rows := make([]ranked, 0, len(r.s.likes))
	for id, set := range r.s.likes {
		if len(set) > 0 {
			rows = append(rows, ranked{id: id, count: len(set)})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].id < rows[j].id
	})

	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.id)
	}
	return ids, nil
}

func (r *FilmRepository) requireFilmAndUser(filmID, userID int64) error {
	if _, ok := r.s.films[filmID]; !ok {
		return filmNotFound(filmID)
	}
	if _, ok := r.s.users[userID]; !ok {
		return userNotFound(userID)
	}
	return nil
}
