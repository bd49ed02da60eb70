package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gocine/docs" // registra a especificação Swagger
	"gocine/internal/api/film"
	"gocine/internal/api/reference"
	"gocine/internal/api/user"
	"gocine/internal/pkg/cache"
	"gocine/internal/pkg/logger"
	"gocine/internal/pkg/metrics"
	"gocine/internal/pkg/middleware"
)

// RateLimit configura o limitador por IP. Sem cache o limitador fica desligado.
type RateLimit struct {
	Cache       cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	userHandler *user.Handler,
	filmHandler *film.Handler,
	referenceHandler *reference.Handler,
	limit RateLimit,
	log logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais: correlação/log primeiro, depois métricas.
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)

	// --- Health check, métricas e documentação ---
	r.Get("/ping", PingHandler)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/v1", func(r chi.Router) {
		if limit.Cache != nil && limit.MaxRequests > 0 {
			r.Use(middleware.RateLimiter(limit.Cache, limit.MaxRequests, limit.Period, log))
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUserHandler)
			r.Put("/", userHandler.UpdateUserHandler)
			r.Get("/", userHandler.ListUsersHandler)
			r.Get("/{id}", userHandler.GetUserByIDHandler)
			r.Get("/{id}/friends", userHandler.ListFriendsHandler)
			r.Put("/{id}/friends/{friendId}", userHandler.AddFriendHandler)
			r.Delete("/{id}/friends/{friendId}", userHandler.RemoveFriendHandler)
			r.Get("/{id}/friends/common/{otherId}", userHandler.CommonFriendsHandler)
		})

		r.Route("/films", func(r chi.Router) {
			r.Post("/", filmHandler.CreateFilmHandler)
			r.Put("/", filmHandler.UpdateFilmHandler)
			r.Get("/", filmHandler.ListFilmsHandler)
			r.Get("/popular", filmHandler.PopularFilmsHandler)
			r.Get("/{id}", filmHandler.GetFilmByIDHandler)
			r.Get("/{id}/likes", filmHandler.LikesHandler)
			r.Put("/{id}/like/{userId}", filmHandler.LikeHandler)
			r.Delete("/{id}/like/{userId}", filmHandler.UnlikeHandler)
		})

		r.Get("/mpa", referenceHandler.ListMpaHandler)
		r.Get("/mpa/{id}", referenceHandler.GetMpaHandler)
		r.Get("/genres", referenceHandler.ListGenresHandler)
		r.Get("/genres/{id}", referenceHandler.GetGenreHandler)
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
