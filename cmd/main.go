package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocine/config"
	"gocine/internal/domain"
	"gocine/internal/pkg/cache"
	"gocine/internal/pkg/database"
	"gocine/internal/pkg/logger"

	// Camadas para Injeção de Dependências
	"gocine/internal/api/film"
	"gocine/internal/api/reference"
	"gocine/internal/api/router"
	"gocine/internal/api/user"
	"gocine/internal/repository/filmrepo"
	"gocine/internal/repository/memory"
	"gocine/internal/repository/referencerepo"
	"gocine/internal/repository/userrepo"
	"gocine/internal/service/filmservice"
	"gocine/internal/service/referenceservice"
	"gocine/internal/service/userservice"
)

// repositories reúne as implementações escolhidas pelo STORAGE_BACKEND.
type repositories struct {
	users   domain.UserRepository
	friends domain.FriendshipRepository
	films   domain.FilmRepository
	likes   domain.LikeRepository
	refs    domain.ReferenceRepository
	db      *sql.DB
}

// @title GoCine API
// @version 1.0
// @description Catálogo social de filmes: usuários, amizades, curtidas e ranking de popularidade.
// @BasePath /v1
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos apenas com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	appLog := logger.NewLogger(cfg.LogLevel)
	defer appLog.Sync()
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"env":     cfg.Environment,
		"storage": cfg.StorageBackend,
		"cache":   cfg.CacheEnabled,
	})

	// 2. Cache (Redis) é opcional: sem ele o serviço segue sem cache e sem rate limit.
	var cacheClient cache.Client
	if cfg.CacheEnabled {
		client, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Warn("Redis indisponível, seguindo sem cache.", map[string]interface{}{"error": err.Error()})
		} else {
			cacheClient = client
			defer cacheClient.Close()
			appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		}
	}

	// 3. Repositórios (Camada de Acesso a Dados)
	repos, err := buildRepositories(cfg, cacheClient, appLog)
	if err != nil {
		appLog.Fatal("Falha ao inicializar o armazenamento.", err)
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	// 4. INJEÇÃO DE DEPENDÊNCIAS: Repository -> Service -> Handler
	userSvc := userservice.NewService(repos.users, repos.friends, appLog)
	filmSvc := filmservice.NewService(repos.films, repos.likes, repos.users, repos.refs, appLog)
	refSvc := referenceservice.NewService(repos.refs, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	r := router.NewRouter(
		user.NewHandler(userSvc, appLog),
		film.NewHandler(filmSvc, appLog),
		reference.NewHandler(refSvc, appLog),
		router.RateLimit{
			Cache:       cacheClient,
			MaxRequests: cfg.RateLimitMaxRequests,
			Period:      cfg.RateLimitPeriod(),
		},
		appLog,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoCine ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

func buildRepositories(cfg *config.Config, cacheClient cache.Client, appLog logger.Logger) (repositories, error) {
	if cfg.StorageBackend == config.StorageMemory {
		store := memory.NewStore()
		users, films := store.Users(), store.Films()
		appLog.Info("Armazenamento em memória inicializado.", nil)
		return repositories{
			users:   users,
			friends: users,
			films:   films,
			likes:   films,
			refs:    store.References(),
		}, nil
	}

	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return repositories{}, err
	}
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	users := userrepo.NewUserRepository(db, cfg.DBTimeout(), appLog)
	films := filmrepo.NewFilmRepository(db, cacheClient, cfg.DBTimeout(), cfg.CacheTTL(), appLog)
	return repositories{
		users:   users,
		friends: users,
		films:   films,
		likes:   films,
		refs:    referencerepo.NewReferenceRepository(db, cfg.DBTimeout(), appLog),
		db:      db,
	}, nil
}
