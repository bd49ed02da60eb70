package user

import (
	"context"
	"net/http"

	"gocine/internal/api/respond"
	"gocine/internal/domain"
	"gocine/internal/pkg/logger"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]domain.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error)
}

// Handler agrupa os Handlers de usuários e amizades.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateUserHandler lida com a requisição POST /v1/users.
// @Summary Cria um novo usuário
// @Description Cria um usuário. Nome em branco assume o login.
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.User true "Dados do usuário"
// @Success 201 {object} domain.User "Usuário criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := respond.Decode(r, &u); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), u)
	respond.Result(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateUserHandler lida com a requisição PUT /v1/users (o ID vem no corpo).
// @Summary Atualiza um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.User true "Usuário completo, com id"
// @Success 200 {object} domain.User "Usuário atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := respond.Decode(r, &u); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), u)
	respond.Result(w, r, h.Logger, updated, err, http.StatusOK)
}

// ListUsersHandler lida com a requisição GET /v1/users.
// @Summary Lista os usuários
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	respond.Result(w, r, h.Logger, users, err, http.StatusOK)
}

// GetUserByIDHandler lida com a requisição GET /v1/users/{id}.
// @Summary Obtém um usuário por ID
// @Tags users
// @Produce json
// @Param id path int true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [get]
func (h *Handler) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	u, err := h.Service.GetUserByID(r.Context(), id)
	respond.Result(w, r, h.Logger, u, err, http.StatusOK)
}

// AddFriendHandler lida com a requisição PUT /v1/users/{id}/friends/{friendId}.
// @Summary Adiciona um amigo
// @Description A amizade é simétrica; repetir a operação não altera nada.
// @Tags friends
// @Param id path int true "ID do usuário"
// @Param friendId path int true "ID do amigo"
// @Success 204
// @Failure 400 {object} domain.ErrorResponse "IDs inválidos"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id}/friends/{friendId} [put]
func (h *Handler) AddFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.friendMutation(w, r, h.Service.AddFriend)
}

// RemoveFriendHandler lida com a requisição DELETE /v1/users/{id}/friends/{friendId}.
// @Summary Remove um amigo
// @Description Remove os dois sentidos da amizade; remover amizade inexistente não é erro.
// @Tags friends
// @Param id path int true "ID do usuário"
// @Param friendId path int true "ID do amigo"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id}/friends/{friendId} [delete]
func (h *Handler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.friendMutation(w, r, h.Service.RemoveFriend)
}

func (h *Handler) friendMutation(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64) error) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	friendID, err := respond.PathID(r, "friendId")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.Result(w, r, h.Logger, nil, op(r.Context(), id, friendID), http.StatusNoContent)
}

// ListFriendsHandler lida com a requisição GET /v1/users/{id}/friends.
// @Summary Lista os amigos de um usuário
// @Tags friends
// @Produce json
// @Param id path int true "ID do usuário"
// @Success 200 {array} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id}/friends [get]
func (h *Handler) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	friends, err := h.Service.ListFriends(r.Context(), id)
	respond.Result(w, r, h.Logger, friends, err, http.StatusOK)
}

// CommonFriendsHandler lida com a requisição GET /v1/users/{id}/friends/common/{otherId}.
// @Summary Lista os amigos em comum
// @Tags friends
// @Produce json
// @Param id path int true "ID do usuário"
// @Param otherId path int true "ID do outro usuário"
// @Success 200 {array} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id}/friends/common/{otherId} [get]
func (h *Handler) CommonFriendsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	otherID, err := respond.PathID(r, "otherId")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	common, err := h.Service.CommonFriends(r.Context(), id, otherID)
	respond.Result(w, r, h.Logger, common, err, http.StatusOK)
}
