package referencerepo_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
	"gocine/internal/repository/referencerepo"
)

func newRepo(t *testing.T) (*referencerepo.ReferenceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return referencerepo.NewReferenceRepository(db, time.Second, logger.NewNop()), mock
}

func TestReferenceRepository_FindAllMpa(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM mpa ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "G").AddRow(int64(2), "PG"))

	all, err := repo.FindAllMpa(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PG", all[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepository_FindGenreByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM genres WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Комедия"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM genres WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	g, err := repo.FindGenreByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Комедия", g.Name)

	_, err = repo.FindGenreByID(context.Background(), 42)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "Gênero com ID 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}
