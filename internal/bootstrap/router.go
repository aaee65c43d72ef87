package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/smartsdlc/go-sdlc-backend/config"
	"github.com/smartsdlc/go-sdlc-backend/internal/analytics"
	httpapi "github.com/smartsdlc/go-sdlc-backend/internal/api/http"
	"github.com/smartsdlc/go-sdlc-backend/internal/api/http/middleware"
	"github.com/smartsdlc/go-sdlc-backend/internal/history"
	projhttp "github.com/smartsdlc/go-sdlc-backend/internal/projects/http"
	"github.com/smartsdlc/go-sdlc-backend/internal/projects/repository"
	"github.com/smartsdlc/go-sdlc-backend/internal/projects/service"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/llm"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
}

// BuildRouter wires repositories, services, and handlers into the gin
// engine, and returns the analytics service so main can start its
// scheduler.
func BuildRouter(dep RouterDeps) (*gin.Engine, *analytics.Service) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-Key", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewProjectRepo(dep.DB)
	breakdownRepo := repository.NewBreakdownRepo(dep.SQLDB)
	sessionStore := history.NewStore(dep.Redis)
	analyticsService := analytics.NewService(breakdownRepo, dep.Redis)

	model := llm.NewClient(llm.Options{
		BaseURL:           dep.Config.AI.BaseURL,
		APIKey:            dep.Config.AI.APIKey,
		ProjectID:         dep.Config.AI.ProjectID,
		ModelID:           dep.Config.AI.ModelID,
		RequestsPerMinute: dep.Config.AI.RequestsPerMinute,
	})

	generator := service.NewGenerationService(projectRepo, breakdownRepo, sessionStore, model)

	api := r.Group("/api/v1")
	handler := projhttp.NewHandler(generator, projectRepo, breakdownRepo, sessionStore, analyticsService)
	handler.Register(api, dep.Config.Server.APIKey)

	return r, analyticsService
}
