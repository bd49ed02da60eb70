package domain

import "context"

// CinemaEpoch é a data da primeira exibição pública de cinema; nenhum filme pode ser anterior a ela.
var CinemaEpoch = NewDate(1895, 12, 28)

// MaxDescriptionBytes é o tamanho máximo da descrição de um filme, em bytes.
const MaxDescriptionBytes = 200

// Film representa um filme do catálogo.
// Likes é uma visão derivada do Like Ledger: preenchida em toda leitura e ignorada em gravações.
type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required,notblank"`
	Description string  `json:"description" validate:"maxbytes=200"`
	ReleaseDate Date    `json:"releaseDate" validate:"required,notbefore=1895-12-28"`
	Duration    int     `json:"duration" validate:"gte=0"`
	Mpa         *Mpa    `json:"mpa,omitempty"`
	Genres      []Genre `json:"genres"`
	Likes       []int64 `json:"likes"`
}

// LikeCount é a popularidade do filme.
func (f Film) LikeCount() int { return len(f.Likes) }

// GenreIDs devolve os IDs dos gêneros na ordem em que aparecem.
func (f Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// FilmRepository define o contrato de persistência para a entidade Film (Entity Store).
type FilmRepository interface {
	Save(ctx context.Context, film Film) (Film, error)
	FindByID(ctx context.Context, id int64) (Film, error)
	// FindByIDs devolve os filmes na mesma ordem dos ids; ids inexistentes são ignorados.
	FindByIDs(ctx context.Context, ids []int64) ([]Film, error)
	FindAll(ctx context.Context) ([]Film, error)
	// FindFirst devolve os primeiros filmes do catálogo (ordem de criação).
	FindFirst(ctx context.Context, limit int) ([]Film, error)
	Update(ctx context.Context, film Film) (Film, error)
}

// LikeRepository define o contrato do Like Ledger, fonte única de verdade para curtidas.
type LikeRepository interface {
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	FindLikes(ctx context.Context, filmID int64) ([]int64, error)
	// PopularFilmIDs devolve os filmes com pelo menos uma curtida, por contagem decrescente e ID crescente.
	PopularFilmIDs(ctx context.Context, limit int) ([]int64, error)
}
