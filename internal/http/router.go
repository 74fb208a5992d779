package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/supportdesk/internal/auth"
	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/http/handlers"
	"github.com/geocoder89/supportdesk/internal/http/middlewares"
	"github.com/geocoder89/supportdesk/internal/observability"
	"github.com/geocoder89/supportdesk/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries the stores the routes need. Handler tests swap in memory
// repos here; production wiring comes from NewRouter.
type Deps struct {
	Users     handlers.UsersStore
	Questions handlers.QuestionsStore
	Messages  handlers.MessageWriter
	Ping      func() error
}

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	deps := Deps{
		Users:     postgres.NewUsersRepo(pool, prom),
		Questions: postgres.NewQuestionsRepo(pool, prom),
		Messages:  postgres.NewMessagesRepo(pool, prom),
		Ping: func() error {
			if pool == nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			return pool.Ping(ctx)
		},
	}

	r := NewRouterWithDeps(log, cfg, prom, deps)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func NewRouterWithDeps(log *slog.Logger, cfg config.Config, prom *observability.Prom, deps Deps) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("supportdesk"))
	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(log))

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager, prom)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Users, jwtManager, cfg)
	profileHandler := handlers.NewProfileHandler(deps.Users)
	questionsHandler := handlers.NewQuestionsHandler(deps.Questions)
	messagesHandler := handlers.NewMessagesHandler(deps.Messages, deps.Users)
	adminUsersHandler := handlers.NewAdminUsersHandler(deps.Users)
	adminQuestionsHandler := handlers.NewAdminQuestionsHandler(deps.Questions)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// everything under /api/user requires a verified token
	userGroup := api.Group("/user")
	userGroup.Use(authMW.RequireAuth())
	userGroup.GET("/profile", profileHandler.GetProfile)
	userGroup.PUT("/profile", profileHandler.UpdateProfile)
	userGroup.PUT("/change-password", profileHandler.ChangePassword)
	userGroup.GET("/questions", questionsHandler.ListMine)
	userGroup.POST("/ask", questionsHandler.Ask)
	userGroup.PUT("/questions/:id/answer", questionsHandler.Answer)
	userGroup.POST("/message", messagesHandler.Send)

	// admin routes: authentication first, role gate second; the order is
	// load-bearing
	adminGroup := api.Group("/admin")
	adminGroup.Use(authMW.RequireAuth())
	adminGroup.Use(authMW.RequireRole(user.RoleAdmin))
	adminGroup.GET("/users", adminUsersHandler.ListUsers)
	adminGroup.GET("/users/:id", adminUsersHandler.GetUser)
	adminGroup.PUT("/users/:id/role", adminUsersHandler.UpdateUserRole)
	adminGroup.DELETE("/users/:id", adminUsersHandler.DeleteUser)
	adminGroup.GET("/questions", adminQuestionsHandler.ListQuestions)
	adminGroup.POST("/questions", adminQuestionsHandler.CreateQuestion)
	adminGroup.PUT("/questions/:id/respond", adminQuestionsHandler.Respond)
	adminGroup.PUT("/questions/:id/delete-answer", adminQuestionsHandler.ClearAnswer)
	adminGroup.DELETE("/questions/:id", adminQuestionsHandler.DeleteQuestion)

	return r
}
