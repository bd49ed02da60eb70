package filmrepo

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocine/internal/domain"
)

func TestAggregateFilms_GroupsGenresByFilm(t *testing.T) {
	release := domain.NewDate(1999, 3, 31)
	rows := []filmRow{
		{ID: 1, Name: "Matrix", ReleaseDate: release, Duration: 136,
			MpaID: sql.NullInt64{Int64: 4, Valid: true}, MpaName: sql.NullString{String: "R", Valid: true},
			GenreID: sql.NullInt64{Int64: 4, Valid: true}, GenreName: sql.NullString{String: "Триллер", Valid: true}},
		{ID: 1, Name: "Matrix", ReleaseDate: release, Duration: 136,
			MpaID: sql.NullInt64{Int64: 4, Valid: true}, MpaName: sql.NullString{String: "R", Valid: true},
			GenreID: sql.NullInt64{Int64: 6, Valid: true}, GenreName: sql.NullString{String: "Боевик", Valid: true}},
		{ID: 2, Name: "Sem gênero", ReleaseDate: release},
	}

	films := aggregateFilms(rows)

	require.Len(t, films, 2)
	assert.Equal(t, []int64{4, 6}, films[0].GenreIDs())
	require.NotNil(t, films[0].Mpa)
	assert.Equal(t, "R", films[0].Mpa.Name)

	assert.Nil(t, films[1].Mpa)
	assert.NotNil(t, films[1].Genres)
	assert.Empty(t, films[1].Genres)
	assert.NotNil(t, films[1].Likes)
}

func TestAggregateFilms_Empty(t *testing.T) {
	films := aggregateFilms(nil)
	assert.NotNil(t, films)
	assert.Empty(t, films)
}
