// Package memory implementa todos os contratos de repositório do GoCine em memória.
// É o backend usado quando STORAGE_BACKEND=memory e nos testes de serviço.
//
// Um único Store guarda usuários, filmes, amizades, curtidas e dados de referência
// sob um mesmo sync.RWMutex; cada contrato é exposto por um adaptador (Users, Films...).
package memory

import (
	"fmt"
	"sort"
	"sync"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
)

// Store é o estado compartilhado do backend em memória.
type Store struct {
	mu sync.RWMutex

	nextUserID int64
	nextFilmID int64

	users     map[int64]domain.User
	userOrder []int64

	films     map[int64]domain.Film
	filmOrder []int64

	// friends guarda as arestas de saída de cada usuário, em ordem de inserção.
	friends map[int64][]int64
	// likes guarda o conjunto de usuários que curtiram cada filme.
	likes map[int64]map[int64]struct{}

	mpa    []domain.Mpa
	genres []domain.Genre
}

// NewStore cria um Store vazio com os dados de referência padrão.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]domain.User),
		films:   make(map[int64]domain.Film),
		friends: make(map[int64][]int64),
		likes:   make(map[int64]map[int64]struct{}),
		mpa:     DefaultMpa(),
		genres:  DefaultGenres(),
	}
}

// DefaultMpa devolve as classificações semeadas pelas migrações.
func DefaultMpa() []domain.Mpa {
	return []domain.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

// DefaultGenres devolve os gêneros semeados pelas migrações.
func DefaultGenres() []domain.Genre {
	return []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

// Users expõe o Store como domain.UserRepository e domain.FriendshipRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Films expõe o Store como domain.FilmRepository e domain.LikeRepository.
func (s *Store) Films() *FilmRepository { return &FilmRepository{s: s} }

// References expõe o Store como domain.ReferenceRepository.
func (s *Store) References() *ReferenceRepository { return &ReferenceRepository{s: s} }

func userNotFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado", id))
}

func filmNotFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado", id))
}

// filmView monta a cópia pública do filme com as curtidas derivadas do ledger. Exige o lock.
func (s *Store) filmView(f domain.Film) domain.Film {
	out := f
	out.Genres = append([]domain.Genre{}, f.Genres...)
	if f.Mpa != nil {
		m := *f.Mpa
		out.Mpa = &m
	}
	out.Likes = s.sortedLikes(f.ID)
	return out
}

// sortedLikes devolve os IDs de usuários que curtiram o filme, em ordem crescente. Exige o lock.
func (s *Store) sortedLikes(filmID int64) []int64 {
	set := s.likes[filmID]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
