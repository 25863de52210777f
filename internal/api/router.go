package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/communityos/eventhub/docs"
	"github.com/communityos/eventhub/internal/api/handler"
	"github.com/communityos/eventhub/internal/api/middleware"
	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/service"
	"github.com/communityos/eventhub/internal/infrastructure/config"
	mongodb "github.com/communityos/eventhub/internal/infrastructure/db/mongo"
	redisdb "github.com/communityos/eventhub/internal/infrastructure/db/redis"
	"github.com/communityos/eventhub/internal/infrastructure/queue"
)

// Dependencies carries the process-level handles the router wires together.
type Dependencies struct {
	Config *config.Config
	DB     *mongo.Database
	Redis  *redis.Client
	Log    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the scan dispatcher (the caller starts the workers).
func NewRouter(deps Dependencies) (*echo.Echo, *queue.Dispatcher) {
	cfg := deps.Config
	log := deps.Log

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventhub"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(deps.DB)
	groups := mongodb.NewGroupRepository(deps.DB)
	events := mongodb.NewEventRepository(deps.DB)
	checkins := mongodb.NewCheckinRepository(deps.DB)
	speakers := mongodb.NewSpeakerRepository(deps.DB)
	sponsors := mongodb.NewSponsorRepository(deps.DB)
	contributions := mongodb.NewContributionRepository(deps.DB)
	collaborators := mongodb.NewCollaboratorRepository(deps.DB)

	// --- Authorization core ---
	resolver := mongodb.NewOwnershipResolver(events, groups, checkins, speakers, sponsors, contributions, collaborators)
	evaluator := authz.NewEvaluator(resolver, log)
	builder := authz.NewBuilder(users, groups)

	// --- Services ---
	dedup := redisdb.NewDedupChecker(deps.Redis)
	authService := service.NewAuthService(users, builder, cfg.SessionSecret, cfg.SessionTTL, log)
	eventService := service.NewEventService(events, evaluator, log)
	checkinService := service.NewCheckinService(checkins, events, dedup, evaluator, log)
	speakerService := service.NewSpeakerService(speakers, events, evaluator, log)
	sponsorService := service.NewSponsorService(sponsors, events, evaluator, log)
	contributionService := service.NewContributionService(contributions, events, evaluator, log)
	groupService := service.NewGroupService(groups, users, events, collaborators, evaluator, log)

	dispatcher := queue.NewDispatcher(cfg.CheckinWorkers, checkinService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	eventHandler := handler.NewEventHandler(eventService)
	checkinHandler := handler.NewCheckinHandler(checkinService, dispatcher)
	speakerHandler := handler.NewSpeakerHandler(speakerService)
	sponsorHandler := handler.NewSponsorHandler(sponsorService)
	contributionHandler := handler.NewContributionHandler(contributionService)
	groupHandler := handler.NewGroupHandler(groupService)
	dashboardHandler := handler.NewDashboardHandler(evaluator)

	auth := middleware.Auth(cfg.SessionSecret)
	session := middleware.Session(cfg.SessionSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh, auth)
	e.GET("/auth/me", authHandler.Me, auth)
	e.POST("/auth/logout", authHandler.Logout)

	// --- API routes ---
	v1 := e.Group("/v1", auth)

	v1.POST("/events", eventHandler.Create)
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.Get)
	v1.PATCH("/events/:id", eventHandler.Update)
	v1.POST("/events/:id/transition", eventHandler.Transition)
	v1.DELETE("/events/:id", eventHandler.Delete)

	v1.POST("/checkins", checkinHandler.Register)
	v1.GET("/events/:id/checkins", checkinHandler.ListByEvent)

	// Door scans mutate check-in state; the handler authorizes each scan
	// against its concrete event id before enqueueing.
	v1.POST("/checkins/scan", checkinHandler.Scan)
	v1.POST("/checkins/scan/batch", checkinHandler.ScanBatch)

	v1.POST("/events/:id/speakers", speakerHandler.Apply)
	v1.GET("/events/:id/speakers", speakerHandler.ListByEvent)
	v1.GET("/speakers/:id", speakerHandler.Get)
	v1.PATCH("/speakers/:id", speakerHandler.Update)
	v1.POST("/speakers/:id/review", speakerHandler.Review)

	v1.POST("/events/:id/sponsors", sponsorHandler.Create)
	v1.GET("/events/:id/sponsors", sponsorHandler.ListByEvent)
	v1.GET("/sponsors/:id", sponsorHandler.Get)
	v1.PATCH("/sponsors/:id", sponsorHandler.Update)
	v1.DELETE("/sponsors/:id", sponsorHandler.Delete)

	v1.POST("/events/:id/contributions", contributionHandler.Create)
	v1.GET("/events/:id/contributions", contributionHandler.ListByEvent)
	v1.GET("/contributions/:id", contributionHandler.Get)
	v1.DELETE("/contributions/:id", contributionHandler.Delete)

	v1.GET("/usergroups", groupHandler.List)
	v1.GET("/usergroups/:id", groupHandler.Get)
	v1.PATCH("/usergroups/:id", groupHandler.Update)
	v1.POST("/events/:id/collaborators", groupHandler.AssignCollaborator)
	v1.GET("/events/:id/collaborators", groupHandler.ListCollaborators)
	v1.DELETE("/events/:id/collaborators/:userID", groupHandler.RemoveCollaborator)

	// --- Dashboard pages (session cookie, redirect on denial) ---
	dashboard := e.Group("/dashboard", session)
	dashboard.GET("", dashboardHandler.Home, middleware.PageGuard(middleware.GuardConfig{
		Evaluator:   evaluator,
		Resource:    authz.ResourceEvent,
		Action:      authz.ActionRead,
		SignInURL:   "/auth/login",
		FallbackURL: "/",
	}))
	dashboard.GET("/events/:id/edit", dashboardHandler.EditEvent, middleware.PageGuard(middleware.GuardConfig{
		Evaluator:   evaluator,
		Resource:    authz.ResourceEvent,
		Action:      authz.ActionUpdate,
		Param:       "id",
		SignInURL:   "/auth/login",
		FallbackURL: "/dashboard",
	}))
	dashboard.GET("/events/:id/checkin", dashboardHandler.CheckinDesk, middleware.PageGuard(middleware.GuardConfig{
		Evaluator:   evaluator,
		Resource:    authz.ResourceCheckin,
		Action:      authz.ActionCheckin,
		Param:       "id",
		SignInURL:   "/auth/login",
		FallbackURL: "/dashboard",
	}))
	dashboard.GET("/usergroup/:id", dashboardHandler.ManageGroup, middleware.PageGuard(middleware.GuardConfig{
		Evaluator:   evaluator,
		Resource:    authz.ResourceUserGroup,
		Action:      authz.ActionUpdate,
		Param:       "id",
		SignInURL:   "/auth/login",
		FallbackURL: "/dashboard",
	}))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
