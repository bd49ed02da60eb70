package filmservice

import (
	"context"
	"fmt"
	"sort"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
	"gocine/internal/pkg/metrics"
	"gocine/internal/pkg/validation"
)

// DefaultTopCount é o tamanho do ranking quando o cliente não informa count.
const DefaultTopCount = 10

// Service orquestra o Entity Store de filmes, o Like Ledger e o ranking de popularidade.
type Service struct {
	films  domain.FilmRepository
	likes  domain.LikeRepository
	users  domain.UserRepository
	refs   domain.ReferenceRepository
	logger logger.Logger
}

// NewService cria uma nova instância do Service, injetando os Repositórios.
func NewService(
	films domain.FilmRepository,
	likes domain.LikeRepository,
	users domain.UserRepository,
	refs domain.ReferenceRepository,
	log logger.Logger,
) *Service {
	return &Service{films: films, likes: likes, users: users, refs: refs, logger: log}
}

func validateID(id int64, label string) error {
	if id <= 0 {
		return apperror.NewValidationError(fmt.Sprintf("%s deve ser um inteiro positivo", label))
	}
	return nil
}

// resolveReferences valida MPA e gêneros contra os dados de referência e preenche os nomes.
// Gêneros repetidos são descartados e o resultado fica ordenado por ID.
func (s *Service) resolveReferences(ctx context.Context, film *domain.Film) error {
	if film.Mpa != nil {
		if err := validateID(film.Mpa.ID, "mpa.id"); err != nil {
			return err
		}
		mpa, err := s.refs.FindMpaByID(ctx, film.Mpa.ID)
		if err != nil {
			return apperror.EnsureAppError("Falha interna ao buscar MPA.", err)
		}
		film.Mpa = &mpa
	}

	seen := make(map[int64]struct{}, len(film.Genres))
	genres := make([]domain.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		if err := validateID(g.ID, "genres.id"); err != nil {
			return err
		}
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}

		genre, err := s.refs.FindGenreByID(ctx, g.ID)
		if err != nil {
			return apperror.EnsureAppError("Falha interna ao buscar gênero.", err)
		}
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	film.Genres = genres
	return nil
}

// CreateFilm valida e grava um novo filme com seus gêneros.
func (s *Service) CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error) {
	s.logger.Debug("Iniciando criação de filme no serviço.", map[string]interface{}{"name": film.Name})

	if err := validation.ValidateStruct(film); err != nil {
		s.logger.Warn("Falha na validação do filme.", map[string]interface{}{"name": film.Name, "error": err.Error()})
		return domain.Film{}, err
	}
	if err := s.resolveReferences(ctx, &film); err != nil {
		return domain.Film{}, err
	}

	film.ID = 0
	film.Likes = nil

	created, err := s.films.Save(ctx, film)
	if err != nil {
		s.logger.Error("Falha ao criar filme no repositório.", err)
		return domain.Film{}, apperror.EnsureAppError("Falha interna ao criar filme.", err)
	}

	s.logger.Info("Filme criado com sucesso.", map[string]interface{}{"film_id": created.ID, "name": created.Name})
	return created, nil
}

// GetFilmByID busca um filme pelo ID, com as curtidas atuais.
func (s *Service) GetFilmByID(ctx context.Context, id int64) (domain.Film, error) {
	if err := validateID(id, "id"); err != nil {
		return domain.Film{}, err
	}

	film, err := s.films.FindByID(ctx, id)
	if err != nil {
		return domain.Film{}, apperror.EnsureAppError("Falha interna ao buscar filme.", err)
	}
	return film, nil
}

// ListFilms devolve todos os filmes em ordem de criação.
func (s *Service) ListFilms(ctx context.Context) ([]domain.Film, error) {
	films, err := s.films.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar filmes.", err)
		return nil, apperror.EnsureAppError("Falha interna ao listar filmes.", err)
	}
	return films, nil
}

// UpdateFilm substitui o filme, a classificação e os gêneros. As curtidas permanecem.
func (s *Service) UpdateFilm(ctx context.Context, film domain.Film) (domain.Film, error) {
	if err := validateID(film.ID, "id"); err != nil {
		return domain.Film{}, err
	}
	if err := validation.ValidateStruct(film); err != nil {
		s.logger.Warn("Falha na validação do filme.", map[string]interface{}{"film_id": film.ID, "error": err.Error()})
		return domain.Film{}, err
	}
	if err := s.resolveReferences(ctx, &film); err != nil {
		return domain.Film{}, err
	}

	if _, err := s.films.Update(ctx, film); err != nil {
		return domain.Film{}, apperror.EnsureAppError("Falha interna ao atualizar filme.", err)
	}

	s.logger.Info("Filme atualizado.", map[string]interface{}{"film_id": film.ID})
	// Relê para devolver as curtidas vigentes.
	return s.GetFilmByID(ctx, film.ID)
}

// checkFilmAndUser garante que o filme e o usuário existem antes de tocar no ledger.
func (s *Service) checkFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if err := validateID(filmID, "id"); err != nil {
		return err
	}
	if err := validateID(userID, "userId"); err != nil {
		return err
	}
	if _, err := s.GetFilmByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return apperror.EnsureAppError("Falha interna ao buscar usuário.", err)
	}
	return nil
}

// Like registra a curtida do usuário no filme; curtir de novo não conta em dobro.
func (s *Service) Like(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := s.likes.AddLike(ctx, filmID, userID); err != nil {
		s.logger.Error("Falha ao registrar curtida.", err)
		return apperror.EnsureAppError("Falha interna ao registrar curtida.", err)
	}

	metrics.LikeEventsTotal.WithLabelValues("like").Inc()
	s.logger.Info("Curtida registrada.", map[string]interface{}{"film_id": filmID, "user_id": userID})
	return nil
}

// Unlike remove a curtida; remover uma curtida inexistente não é erro.
func (s *Service) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := s.likes.RemoveLike(ctx, filmID, userID); err != nil {
		s.logger.Error("Falha ao remover curtida.", err)
		return apperror.EnsureAppError("Falha interna ao remover curtida.", err)
	}

	metrics.LikeEventsTotal.WithLabelValues("unlike").Inc()
	s.logger.Info("Curtida removida.", map[string]interface{}{"film_id": filmID, "user_id": userID})
	return nil
}

// LikesOf devolve os IDs dos usuários que curtiram o filme, em ordem crescente.
func (s *Service) LikesOf(ctx context.Context, filmID int64) ([]int64, error) {
	if _, err := s.GetFilmByID(ctx, filmID); err != nil {
		return nil, err
	}

	ids, err := s.likes.FindLikes(ctx, filmID)
	if err != nil {
		return nil, apperror.EnsureAppError("Falha interna ao listar curtidas.", err)
	}
	return ids, nil
}

// TopFilms devolve os count filmes mais curtidos (contagem decrescente, empate pelo menor ID).
// Filmes sem curtidas entram depois, na ordem do catálogo; sem nenhuma curtida registrada
// o resultado é simplesmente o início do catálogo.
func (s *Service) TopFilms(ctx context.Context, count int) ([]domain.Film, error) {
	if count < 1 {
		return nil, apperror.NewValidationError("count deve ser maior ou igual a 1")
	}

	ids, err := s.likes.PopularFilmIDs(ctx, count)
	if err != nil {
		s.logger.Error("Falha ao calcular ranking de popularidade.", err)
		return nil, apperror.EnsureAppError("Falha interna ao calcular ranking.", err)
	}

	films := make([]domain.Film, 0, count)
	if len(ids) > 0 {
		ranked, err := s.films.FindByIDs(ctx, ids)
		if err != nil {
			return nil, apperror.EnsureAppError("Falha interna ao carregar filmes do ranking.", err)
		}
		films = append(films, ranked...)
	}
	if len(films) >= count {
		return films, nil
	}

	if len(ids) == 0 {
		s.logger.Debug("Nenhuma curtida registrada, usando ordem do catálogo.", map[string]interface{}{"count": count})
	}

	// Completa com filmes sem curtidas. Os len(ids) primeiros do catálogo podem já estar no ranking.
	catalog, err := s.films.FindFirst(ctx, count+len(ids))
	if err != nil {
		return nil, apperror.EnsureAppError("Falha interna ao carregar filmes do catálogo.", err)
	}
	ranked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		ranked[id] = struct{}{}
	}
	for _, f := range catalog {
		if len(films) == count {
			break
		}
		if _, ok := ranked[f.ID]; !ok {
			films = append(films, f)
		}
	}
	return films, nil
}
