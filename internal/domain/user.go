package domain

import (
	"context"
	"strings"
)

// User representa um usuário do catálogo.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,notblank,contains=@"`
	Login    string `json:"login" validate:"required,notblank"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"required,notfuture"`
}

// DisplayNameOrLogin aplica a regra de nome de exibição: nome em branco assume o login.
// Usada apenas na criação; updates gravam o nome como recebido.
func (u User) DisplayNameOrLogin() string {
	if strings.TrimSpace(u.Name) == "" {
		return u.Login
	}
	return u.Name
}

// UserRepository define o contrato de persistência para a entidade User (Entity Store).
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
}

// FriendshipRepository define o contrato do grafo de amizades.
// A relação é simétrica: cada operação grava ou remove as duas direções de forma atômica.
type FriendshipRepository interface {
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	FindFriends(ctx context.Context, userID int64) ([]User, error)
	FindCommonFriends(ctx context.Context, userID, otherID int64) ([]User, error)
}
