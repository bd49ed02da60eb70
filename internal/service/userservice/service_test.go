package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
	"gocine/internal/repository/memory"
	"gocine/internal/service/userservice"
)

// MockUserRepository é uma implementação mock de domain.UserRepository e domain.FriendshipRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *MockUserRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *MockUserRepository) FindFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func newUser(login, name string) domain.User {
	return domain.User{
		Email:    login + "@exemplo.com",
		Login:    login,
		Name:     name,
		Birthday: domain.NewDate(1990, 1, 1),
	}
}

func newMemoryService() *userservice.Service {
	repo := memory.NewStore().Users()
	return userservice.NewService(repo, repo, logger.NewNop())
}

// --- Testes com mock ---

func TestCreateUser_NameFallsBackToLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	expected := newUser("joao", "joao")
	mockRepo.On("Save", mock.Anything, expected).Return(domain.User{ID: 1, Email: expected.Email, Login: "joao", Name: "joao", Birthday: expected.Birthday}, nil)

	created, err := svc.CreateUser(context.Background(), newUser("joao", "  "))

	require.NoError(t, err)
	assert.Equal(t, "joao", created.Name)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_ValidationFailsBeforeRepo(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	u := newUser("joao", "")
	u.Email = "sem-arroba"

	_, err := svc.CreateUser(context.Background(), u)

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateUser_RepoErrorIsInternal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	mockRepo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, errors.New("conexão recusada"))

	_, err := svc.CreateUser(context.Background(), newUser("ana", "Ana"))

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
	mockRepo.AssertExpectations(t)
}

func TestGetUserByID_InvalidID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	for _, id := range []int64{0, -3} {
		_, err := svc.GetUserByID(context.Background(), id)
		var vErr *apperror.ValidationError
		assert.ErrorAs(t, err, &vErr)
	}
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAddFriend_UnknownFriendPersistsNothing(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(domain.User{ID: 1}, nil)
	mockRepo.On("FindByID", mock.Anything, int64(9)).Return(domain.User{}, apperror.NewNotFoundError("usuário 9"))

	err := svc.AddFriend(context.Background(), 1, 9)

	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
	mockRepo.AssertNotCalled(t, "AddFriend", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFriend_SelfIsValidationError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, mockRepo, logger.NewNop())

	err := svc.AddFriend(context.Background(), 4, 4)

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

// --- Testes de comportamento com o Store em memória ---

func TestCreateUser_IDsAreUniqueAndIncreasing(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		u, err := svc.CreateUser(ctx, newUser("u", ""))
		require.NoError(t, err)
		assert.Greater(t, u.ID, last)
		last = u.ID
	}
}

func TestCreateUser_RoundTrip(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, newUser("maria", ""))
	require.NoError(t, err)

	got, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "maria", got.Name)
}

func TestUpdateUser_KeepsBlankNameAndUnknownIsNotFound(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, newUser("maria", "Maria"))
	require.NoError(t, err)

	created.Name = ""
	updated, err := svc.UpdateUser(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "", updated.Name)

	ghost := newUser("ghost", "")
	ghost.ID = 99
	_, err = svc.UpdateUser(ctx, ghost)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestFriendship_SymmetricPolicyScenario(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()
	for _, login := range []string{"u1", "u2", "u3"} {
		_, err := svc.CreateUser(ctx, newUser(login, ""))
		require.NoError(t, err)
	}

	require.NoError(t, svc.AddFriend(ctx, 1, 2))
	require.NoError(t, svc.AddFriend(ctx, 1, 3))

	f1, err := svc.ListFriends(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, userIDs(f1))

	f2, err := svc.ListFriends(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, userIDs(f2), "a amizade é simétrica")

	// Amigos em comum são simétricos.
	ab, err := svc.CommonFriends(ctx, 2, 3)
	require.NoError(t, err)
	ba, err := svc.CommonFriends(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, userIDs(ab), userIDs(ba))
	assert.Equal(t, []int64{1}, userIDs(ab))
}

func TestCommonFriends_EmptyNotError(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()
	for _, login := range []string{"u1", "u2"} {
		_, err := svc.CreateUser(ctx, newUser(login, ""))
		require.NoError(t, err)
	}

	common, err := svc.CommonFriends(ctx, 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, common)
	assert.Empty(t, common)

	_, err = svc.CommonFriends(ctx, 1, 50)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRemoveFriend_IdempotentAndBothSides(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()
	for _, login := range []string{"u1", "u2"} {
		_, err := svc.CreateUser(ctx, newUser(login, ""))
		require.NoError(t, err)
	}

	require.NoError(t, svc.RemoveFriend(ctx, 1, 2), "remover amizade inexistente é no-op")

	require.NoError(t, svc.AddFriend(ctx, 1, 2))
	require.NoError(t, svc.AddFriend(ctx, 2, 1))
	require.NoError(t, svc.RemoveFriend(ctx, 2, 1))

	f1, _ := svc.ListFriends(ctx, 1)
	f2, _ := svc.ListFriends(ctx, 2)
	assert.Empty(t, f1)
	assert.Empty(t, f2)

	err := svc.RemoveFriend(ctx, 1, 7)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func userIDs(users []domain.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
