package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contesthub/backend/internal/api/handler"
	"github.com/contesthub/backend/internal/api/middleware"
	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
	"github.com/contesthub/backend/internal/core/service"
	mongodb "github.com/contesthub/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/contesthub/backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, intents ports.IntentClient, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("contesthub"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	contestRepo := mongodb.NewContestRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	submissionRepo := mongodb.NewSubmissionRepository(db)

	// --- Services ---
	authService := service.NewAuthService(jwtSecret, time.Hour)
	userService := service.NewUserService(userRepo, log)
	contestService := service.NewContestService(contestRepo, submissionRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, contestRepo, intents, redisdb.NewReplayChecker(rdb), log)
	submissionService := service.NewSubmissionService(submissionRepo, paymentRepo, contestRepo, log)
	reportService := service.NewReportService(userRepo, contestRepo, paymentRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	contestHandler := handler.NewContestHandler(contestService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Gates ---
	auth := middleware.Auth(jwtSecret)
	adminOnly := middleware.RequireRole(userRepo, domain.RoleAdmin)
	creatorOnly := middleware.RequireRole(userRepo, domain.RoleCreator)

	// --- Auth ---
	e.POST("/jwt", authHandler.IssueToken)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.GET("/users", userHandler.List, auth, adminOnly)
	e.GET("/users/admin/:email", userHandler.ProbeAdmin, auth)
	e.GET("/users/creator/:email", userHandler.ProbeCreator, auth)
	e.GET("/users/:email", userHandler.Get, auth)
	e.PATCH("/users/profile/:email", userHandler.UpdateProfile, auth)
	e.PATCH("/users/role/:id", userHandler.ChangeRole, auth, adminOnly)

	// --- Contests ---
	e.POST("/contests", contestHandler.Create, auth, creatorOnly)
	e.GET("/contests", contestHandler.ListPublic)
	e.GET("/contests/creator", contestHandler.ListOwn, auth, creatorOnly)
	e.GET("/contests/admin", contestHandler.ListAll, auth, adminOnly)
	e.GET("/contests/winners", contestHandler.Winners)
	e.GET("/contests/:id", contestHandler.Get)
	e.PATCH("/contests/creator/edit/:id", contestHandler.Edit, auth, creatorOnly)
	e.DELETE("/contests/creator/:id", contestHandler.DeleteOwn, auth, creatorOnly)
	e.PATCH("/contests/status/:id", contestHandler.SetStatus, auth, adminOnly)
	e.PATCH("/contests/winner/:contestId", contestHandler.DeclareWinner, auth, creatorOnly)
	e.DELETE("/contests/:id", contestHandler.DeleteAny, auth, adminOnly)

	// --- Reports ---
	e.GET("/popular-contests", reportHandler.Popular)
	e.GET("/creators/best", reportHandler.BestCreators)
	e.GET("/admin-stats", reportHandler.Stats, auth, adminOnly)

	// --- Payments ---
	e.POST("/create-payment-intent", paymentHandler.CreateIntent, auth)
	e.POST("/payments", paymentHandler.Record, auth)
	e.GET("/participated-contests", paymentHandler.Participated, auth)

	// --- Submissions ---
	e.POST("/submissions", submissionHandler.Submit, auth)
	e.GET("/submissions/contest/:contestId", submissionHandler.ListForContest, auth, creatorOnly)

	// --- Health / ops ---
	e.GET("/", healthHandler.Root)
	e.GET("/test", healthHandler.Test)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
