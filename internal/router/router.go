package router

import (
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/config"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/handler"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/middleware"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/repository"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/service"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/ws"
	"github.com/portgasdyamato/Pocket-Fund-sub000/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, gen service.Generator, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	questRepo := repository.NewQuestRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	eventsHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	ledgerSvc := service.NewLedgerService(ledgerRepo, streakRepo, badgeRepo, notifRepo, eventsHub)
	streakSvc := service.NewStreakService(streakRepo)
	questSvc := service.NewQuestService(questRepo, ledgerRepo, notifRepo, eventsHub)
	coachSvc := service.NewCoachService(gen, userRepo, goalRepo, ledgerRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	txHandler := handler.NewTransactionHandler(ledgerSvc)
	walletHandler := handler.NewWalletHandler(ledgerSvc)
	stashHandler := handler.NewStashHandler(ledgerSvc)
	goalHandler := handler.NewGoalHandler(goalRepo)
	questHandler := handler.NewQuestHandler(questSvc)
	streakHandler := handler.NewStreakHandler(streakSvc)
	badgeHandler := handler.NewBadgeHandler(badgeRepo)
	notifHandler := handler.NewNotificationHandler(notifRepo)
	coachHandler := handler.NewCoachHandler(coachSvc)
	meHandler := handler.NewMeHandler(userRepo, goalRepo, badgeRepo, ledgerSvc, streakSvc, cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		authed := api.Group("")
		authed.Use(authMw)
		{
			authed.POST("/wallet/credit", walletHandler.Credit)

			authed.POST("/transactions", txHandler.Create)
			authed.GET("/transactions", txHandler.List)
			authed.PATCH("/transactions/:id/tag", txHandler.Tag)

			authed.POST("/stash", stashHandler.Create)
			authed.GET("/stash/total", stashHandler.Total)

			authed.GET("/streak", streakHandler.Get)

			authed.GET("/goals", goalHandler.List)
			authed.POST("/goals", goalHandler.Create)
			authed.PATCH("/goals/:id", goalHandler.Update)
			authed.DELETE("/goals/:id", goalHandler.Delete)

			authed.GET("/quests", questHandler.List)
			authed.POST("/quests/:id/join", questHandler.Join)
			authed.POST("/quests/:id/complete", questHandler.Complete)

			authed.GET("/badges", badgeHandler.ListAll)
			authed.GET("/me/badges", badgeHandler.ListMine)

			authed.GET("/me/profile", meHandler.GetProfile)
			authed.GET("/me/dashboard", meHandler.GetDashboard)
			authed.POST("/me/avatar", meHandler.UploadAvatar)

			authed.GET("/notifications", notifHandler.List)
			authed.PUT("/notifications/:id/read", notifHandler.MarkRead)

			authed.POST("/coach/chat", coachHandler.Chat)
		}
	}

	r.GET("/ws/events", ws.UpgradeEventsWS(&cfg.JWT, eventsHub))

	return r
}
