package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/comply-core/comply_core/internal/ai"
	"github.com/comply-core/comply_core/internal/compliance"
	"github.com/comply-core/comply_core/internal/config"
	"github.com/comply-core/comply_core/internal/dashboard"
	"github.com/comply-core/comply_core/internal/document"
	"github.com/comply-core/comply_core/internal/middleware"
	"github.com/comply-core/comply_core/internal/password"
	"github.com/comply-core/comply_core/internal/riskscore"
	"github.com/comply-core/comply_core/internal/token"
	"github.com/comply-core/comply_core/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database or cache (development only) it falls back to in-memory stores.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Auth core: one hasher and one token service per process, both built
	// from config and shared by reference.
	hasher := password.NewHasher(d.Cfg.BcryptCost)
	tokens := token.NewService([]byte(d.Cfg.JWTSecret), d.Cfg.TokenLifetime)

	var userRepo user.Repository
	var itemRepo compliance.Repository
	var docRepo document.Repository
	var scoreRepo riskscore.Repository
	var dashRepo dashboard.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		itemRepo = compliance.NewPostgresRepository(d.DB)
		docRepo = document.NewPostgresRepository(d.DB)
		scoreRepo = riskscore.NewPostgresRepository(d.DB)
		dashRepo = dashboard.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		itemRepo = compliance.NewMemoryRepository()
		docRepo = document.NewMemoryRepository()
		scoreRepo = riskscore.NewMemoryRepository()
		dashRepo = dashboard.NewMemoryRepository(itemRepo, docRepo)
	}

	store, err := document.NewStore(d.Cfg.UploadDir, d.Cfg.MaxFileSize)
	if err != nil {
		return err
	}

	var aiClient *ai.Client
	var analyzer document.Analyzer
	if d.Cfg.OllamaURL != "" {
		aiClient = ai.NewClient(d.Cfg.OllamaURL, d.Cfg.OllamaModel)
		analyzer = aiClient
	}

	userSvc := user.NewService(userRepo, hasher, tokens)
	itemSvc := compliance.NewService(itemRepo)
	docSvc := document.NewService(docRepo, store, analyzer, d.Logger)
	scoreSvc := riskscore.NewService(scoreRepo, itemRepo)
	dashSvc := dashboard.NewService(dashRepo)

	api := app.Group("/api/v1")

	authmw := middleware.Authenticate(tokens)
	var rateLimiter fiber.Handler
	if d.Cache != nil {
		rateLimiter = middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	}
	RegisterAuthRoutes(api, user.NewHandler(userSvc), authmw, rateLimiter)

	protected := api.Group("", authmw)
	if d.Cache != nil {
		protected.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterComplianceRoutes(protected, compliance.NewHandler(itemSvc))
	RegisterDocumentRoutes(protected, document.NewHandler(docSvc))
	RegisterRiskScoreRoutes(protected, riskscore.NewHandler(scoreSvc))
	RegisterDashboardRoutes(protected, dashboard.NewHandler(dashSvc))
	RegisterAIRoutes(protected, ai.NewHandler(aiClient))

	return nil
}
