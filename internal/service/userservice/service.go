package userservice

import (
	"context"
	"fmt"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
	"gocine/internal/pkg/metrics"
	"gocine/internal/pkg/validation"
)

// Service orquestra o Entity Store de usuários e o grafo de amizades.
type Service struct {
	users   domain.UserRepository
	friends domain.FriendshipRepository
	logger  logger.Logger
}

// NewService cria uma nova instância do Service, injetando os Repositórios.
func NewService(users domain.UserRepository, friends domain.FriendshipRepository, log logger.Logger) *Service {
	return &Service{users: users, friends: friends, logger: log}
}

func validateID(id int64, label string) error {
	if id <= 0 {
		return apperror.NewValidationError(fmt.Sprintf("%s deve ser um inteiro positivo", label))
	}
	return nil
}

// CreateUser valida e grava um novo usuário. Nome em branco assume o login.
func (s *Service) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.logger.Debug("Iniciando criação de usuário no serviço.", map[string]interface{}{"login": user.Login})

	if err := validation.ValidateStruct(user); err != nil {
		s.logger.Warn("Falha na validação do usuário.", map[string]interface{}{"login": user.Login, "error": err.Error()})
		return domain.User{}, err
	}

	user.ID = 0
	user.Name = user.DisplayNameOrLogin()

	created, err := s.users.Save(ctx, user)
	if err != nil {
		s.logger.Error("Falha ao criar usuário no repositório.", err)
		return domain.User{}, apperror.EnsureAppError("Falha interna ao criar usuário.", err)
	}

	s.logger.Info("Usuário criado com sucesso.", map[string]interface{}{"user_id": created.ID, "login": created.Login})
	return created, nil
}

// GetUserByID busca um usuário pelo ID.
func (s *Service) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	if err := validateID(id, "id"); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, apperror.EnsureAppError("Falha interna ao buscar usuário.", err)
	}
	return user, nil
}

// ListUsers devolve todos os usuários em ordem de criação.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar usuários.", err)
		return nil, apperror.EnsureAppError("Falha interna ao listar usuários.", err)
	}
	return users, nil
}

// UpdateUser substitui o usuário por completo. O nome é gravado como recebido.
func (s *Service) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := validateID(user.ID, "id"); err != nil {
		return domain.User{}, err
	}
	if err := validation.ValidateStruct(user); err != nil {
		s.logger.Warn("Falha na validação do usuário.", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return domain.User{}, err
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, apperror.EnsureAppError("Falha interna ao atualizar usuário.", err)
	}

	s.logger.Info("Usuário atualizado.", map[string]interface{}{"user_id": updated.ID})
	return updated, nil
}

// checkPair valida os dois IDs e garante que ambos os usuários existem.
func (s *Service) checkPair(ctx context.Context, userID, otherID int64, otherLabel string) error {
	if err := validateID(userID, "id"); err != nil {
		return err
	}
	if err := validateID(otherID, otherLabel); err != nil {
		return err
	}
	if userID == otherID {
		return apperror.NewValidationError("Um usuário não pode ser amigo de si mesmo")
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetUserByID(ctx, otherID); err != nil {
		return err
	}
	return nil
}

// AddFriend cria a amizade nos dois sentidos. Repetir a operação não altera nada.
func (s *Service) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID, "friendId"); err != nil {
		return err
	}

	if err := s.friends.AddFriend(ctx, userID, friendID); err != nil {
		s.logger.Error("Falha ao adicionar amizade.", err)
		return apperror.EnsureAppError("Falha interna ao adicionar amizade.", err)
	}

	metrics.FriendshipEventsTotal.WithLabelValues("add").Inc()
	s.logger.Info("Amizade adicionada.", map[string]interface{}{"user_id": userID, "friend_id": friendID})
	return nil
}

// RemoveFriend desfaz a amizade nos dois sentidos; desfazer uma amizade inexistente não é erro.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID, "friendId"); err != nil {
		return err
	}

	if err := s.friends.RemoveFriend(ctx, userID, friendID); err != nil {
		s.logger.Error("Falha ao remover amizade.", err)
		return apperror.EnsureAppError("Falha interna ao remover amizade.", err)
	}

	metrics.FriendshipEventsTotal.WithLabelValues("remove").Inc()
	s.logger.Info("Amizade removida.", map[string]interface{}{"user_id": userID, "friend_id": friendID})
	return nil
}

// ListFriends devolve os amigos na ordem em que as amizades foram criadas.
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	friends, err := s.friends.FindFriends(ctx, userID)
	if err != nil {
		return nil, apperror.EnsureAppError("Falha interna ao listar amigos.", err)
	}
	return friends, nil
}

// CommonFriends devolve os amigos compartilhados, na ordem de amizades de userID.
// Sem amigos em comum o resultado é uma lista vazia.
func (s *Service) CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	if err := validateID(userID, "id"); err != nil {
		return nil, err
	}
	if err := validateID(otherID, "otherId"); err != nil {
		return nil, err
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.GetUserByID(ctx, otherID); err != nil {
		return nil, err
	}

	common, err := s.friends.FindCommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, apperror.EnsureAppError("Falha interna ao listar amigos em comum.", err)
	}
	if common == nil {
		common = []domain.User{}
	}
	return common, nil
}
