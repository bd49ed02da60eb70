package filmrepo

import (
	"database/sql"

	"gocine/internal/domain"
)

// filmRow é uma linha do LEFT JOIN films × mpa × film_genres × genres.
type filmRow struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate domain.Date
	Duration    int
	MpaID       sql.NullInt64
	MpaName     sql.NullString
	GenreID     sql.NullInt64
	GenreName   sql.NullString
}

// aggregateFilms agrupa as linhas por filme, preservando a ordem de chegada.
// As linhas precisam vir ordenadas por f.id.
func aggregateFilms(rows []filmRow) []domain.Film {
	films := make([]domain.Film, 0)
	for _, row := range rows {
		if len(films) == 0 || films[len(films)-1].ID != row.ID {
			f := domain.Film{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				ReleaseDate: row.ReleaseDate,
				Duration:    row.Duration,
				Genres:      []domain.Genre{},
				Likes:       []int64{},
			}
			if row.MpaID.Valid {
				f.Mpa = &domain.Mpa{ID: row.MpaID.Int64, Name: row.MpaName.String}
			}
			films = append(films, f)
		}

		if row.GenreID.Valid {
			last := &films[len(films)-1]
			last.Genres = append(last.Genres, domain.Genre{ID: row.GenreID.Int64, Name: row.GenreName.String})
		}
	}
	return films
}
