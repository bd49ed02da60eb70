package userrepo

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

// UserRepository implementa domain.UserRepository e domain.FriendshipRepository sobre o PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

var (
	_ domain.UserRepository       = (*UserRepository)(nil)
	_ domain.FriendshipRepository = (*UserRepository)(nil)
)

// NewUserRepository cria e retorna uma nova instância do Repositório de Usuários.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const userColumns = `id, email, login, name, birthday`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday)
	return u, err
}

// Save insere o usuário; o ID é gerado pelo BIGSERIAL do banco.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.DB.QueryRowContext(ctxTimeout, query, user.Email, user.Login, user.Name, user.Birthday).Scan(&user.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	r.logger.Debug("Usuário inserido.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	return r.queryUsers(ctxTimeout, "Falha ao listar usuários", query)
}

// Update substitui todos os campos do usuário (last-write-wins).
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		UPDATE users
		SET email = $1, login = $2, name = $3, birthday = $4
		WHERE id = $5`

	result, err := r.DB.ExecContext(ctxTimeout, query, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao atualizar usuário", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.User{}, apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado", user.ID))
	}
	return user, nil
}

// AddFriend grava as duas direções da amizade numa única transação.
// Arestas já existentes são mantidas (e conservam a posição original na lista).
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	const query = `
		INSERT INTO friendship_edges (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING`

	return r.inTx(ctx, "Falha ao adicionar amizade", func(ctxTimeout context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctxTimeout, query, userID, friendID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctxTimeout, query, friendID, userID)
		return err
	})
}

// RemoveFriend remove as duas direções; remover uma amizade inexistente não é erro.
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	const query = `DELETE FROM friendship_edges WHERE user_id = $1 AND friend_id = $2`

	return r.inTx(ctx, "Falha ao remover amizade", func(ctxTimeout context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctxTimeout, query, userID, friendID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctxTimeout, query, friendID, userID)
		return err
	})
}

// FindFriends devolve os amigos na ordem em que as arestas foram criadas.
func (r *UserRepository) FindFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM friendship_edges e
		JOIN users u ON u.id = e.friend_id
		WHERE e.user_id = $1
		ORDER BY e.id`

	return r.queryUsers(ctxTimeout, "Falha ao listar amigos", query, userID)
}

// FindCommonFriends devolve a interseção na ordem de amizades de userID.
func (r *UserRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM friendship_edges a
		JOIN friendship_edges b ON b.friend_id = a.friend_id AND b.user_id = $2
		JOIN users u ON u.id = a.friend_id
		WHERE a.user_id = $1
		ORDER BY a.id`

	return r.queryUsers(ctxTimeout, "Falha ao listar amigos em comum", query, userID, otherID)
}

func (r *UserRepository) queryUsers(ctx context.Context, failMsg, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error(failMsg+".", err)
		return nil, apperror.NewDBError(failMsg, err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewDBError(failMsg, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError(failMsg, err)
	}
	return users, nil
}

// inTx executa fn numa transação com timeout; qualquer erro desfaz tudo.
// Violação de FK vira NotFoundError (usuário inexistente).
func (r *UserRepository) inTx(ctx context.Context, failMsg string, fn func(context.Context, *sql.Tx) error) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação.", err)
		return apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	if err := fn(ctxTimeout, tx); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return apperror.NewNotFoundError("Usuário informado não existe")
		}
		r.logger.Error(failMsg+".", err)
		return apperror.NewDBError(failMsg, err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação.", err)
		return apperror.NewDBError("Falha ao commitar transação", err)
	}
	return nil
}
