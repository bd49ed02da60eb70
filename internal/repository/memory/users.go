package memory

import (
	"context"

	"gocine/internal/domain"
)

// UserRepository implementa domain.UserRepository e domain.FriendshipRepository sobre o Store.
type UserRepository struct {
	s *Store
}

var (
	_ domain.UserRepository       = (*UserRepository)(nil)
	_ domain.FriendshipRepository = (*UserRepository)(nil)
)

func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[user.ID] = user
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, userNotFound(id)
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		out = append(out, r.s.users[id])
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return domain.User{}, userNotFound(user.ID)
	}
	r.s.users[user.ID] = user
	return user, nil
}

// AddFriend grava as duas direções da amizade; arestas já existentes são mantidas.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.requireUsers(userID, friendID); err != nil {
		return err
	}
	r.addEdge(userID, friendID)
	r.addEdge(friendID, userID)
	return nil
}

// RemoveFriend remove as duas direções; remover uma amizade inexistente não é erro.
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.requireUsers(userID, friendID); err != nil {
		return err
	}
	r.removeEdge(userID, friendID)
	r.removeEdge(friendID, userID)
	return nil
}

func (r *UserRepository) FindFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.requireUsers(userID); err != nil {
		return nil, err
	}
	return r.usersOf(r.s.friends[userID]), nil
}

// FindCommonFriends devolve a interseção na ordem de amizades de userID.
func (r *UserRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.requireUsers(userID, otherID); err != nil {
		return nil, err
	}

	other := make(map[int64]struct{}, len(r.s.friends[otherID]))
	for _, id := range r.s.friends[otherID] {
		other[id] = struct{}{}
	}

	common := make([]int64, 0)
	for _, id := range r.s.friends[userID] {
		if _, ok := other[id]; ok {
			common = append(common, id)
		}
	}
	return r.usersOf(common), nil
}

func (r *UserRepository) requireUsers(ids ...int64) error {
	for _, id := range ids {
		if _, ok := r.s.users[id]; !ok {
			return userNotFound(id)
		}
	}
	return nil
}

func (r *UserRepository) addEdge(from, to int64) {
	for _, id := range r.s.friends[from] {
		if id == to {
			return
		}
	}
	r.s.friends[from] = append(r.s.friends[from], to)
}

func (r *UserRepository) removeEdge(from, to int64) {
	edges := r.s.friends[from]
	for i, id := range edges {
		if id == to {
			r.s.friends[from] = append(edges[:i:i], edges[i+1:]...)
			return
		}
	}
}

func (r *UserRepository) usersOf(ids []int64) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.users[id])
	}
	return out
}
