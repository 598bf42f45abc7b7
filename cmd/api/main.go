package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/config"
	"github.com/yourusername/predictor-api/internal/handler"
	"github.com/yourusername/predictor-api/internal/middleware"
	pgRepo "github.com/yourusername/predictor-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/predictor-api/internal/repository/redis"
	"github.com/yourusername/predictor-api/internal/service"
	"github.com/yourusername/predictor-api/pkg/auth"
	"github.com/yourusername/predictor-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	seasonRepo := pgRepo.NewSeasonRepo(db)
	fixtureRepo := pgRepo.NewFixtureRepo(db)
	predictionRepo := pgRepo.NewPredictionRepo(db)
	statsRepo := pgRepo.NewStatsRepo(db)
	leagueRepo := pgRepo.NewLeagueRepo(db)
	notificationRepo := pgRepo.NewNotificationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Outbound mail is optional; without an API key verification emails are
	// recorded but not sent.
	var emailService service.EmailService
	if cfg.Email.APIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.FromAddr)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY not set, email sending disabled")
		emailService = &service.NoopEmailService{}
	}

	// Services
	statsService := service.NewStatsService(statsRepo, predictionRepo, fixtureRepo, db)
	seasonService := service.NewSeasonService(seasonRepo, fixtureRepo, db)
	fixtureService := service.NewFixtureService(fixtureRepo, predictionRepo, seasonRepo, notificationRepo, statsService, cacheRepo, db)
	predictionService := service.NewPredictionService(predictionRepo, fixtureRepo, userRepo, cfg.Game.PredictionDeadlineMinutes, cfg.Game.NextFixtureOnly)
	leaderboardService := service.NewLeaderboardService(statsRepo, fixtureRepo, seasonRepo, cacheRepo, cfg.Game.FormWindow)
	leagueService := service.NewLeagueService(leagueRepo, statsRepo, seasonRepo, db, cfg.Game.MaxLeaguesPerUser, cfg.Game.DefaultLeagueSize)
	userService := service.NewUserService(userRepo, notificationRepo)
	accountService := service.NewAccountService(userRepo, leagueRepo, predictionRepo, statsRepo, notificationRepo, db)
	adminService := service.NewAdminService(userRepo, fixtureRepo, predictionRepo)

	authService, err := service.NewAuthService(userRepo, notificationRepo, cacheRepo, jwtService, emailService, cfg.Email.VerifyURL)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService, statsService, seasonService)
	seasonHandler := handler.NewSeasonHandler(seasonService)
	fixtureHandler := handler.NewFixtureHandler(fixtureService, seasonService, predictionService)
	predictionHandler := handler.NewPredictionHandler(predictionService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, seasonService)
	leagueHandler := handler.NewLeagueHandler(leagueService)
	accountHandler := handler.NewAccountHandler(accountService)
	adminHandler := handler.NewAdminHandler(adminService, statsService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/verify-email", authHandler.VerifyEmail)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/resend-verification", authHandler.ResendVerification)
			}
		}

		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.GetMe)
			users.PUT("/me", userHandler.UpdateProfile)
			users.POST("/me/change-password", userHandler.ChangePassword)
			users.GET("/me/stats", userHandler.GetMyStats)
			users.GET("/me/notifications", userHandler.ListMyNotifications)
		}

		account := api.Group("/account")
		account.Use(authMiddleware.RequireAuth())
		{
			account.GET("/deletion-preview", accountHandler.PreviewDeletion)
			account.POST("/delete", accountHandler.DeleteAccount)
		}

		seasons := api.Group("/seasons")
		{
			seasons.GET("", seasonHandler.List)
			seasons.GET("/current", seasonHandler.Current)

			seasonWithID := seasons.Group("/:id")
			seasonWithID.Use(middleware.ExtractUintParam("id", "seasonID"))
			{
				seasonWithID.GET("", seasonHandler.Get)

				adminSeasons := seasonWithID.Group("")
				adminSeasons.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
				{
					adminSeasons.POST("/activate", seasonHandler.Activate)
					adminSeasons.POST("/archive", seasonHandler.Archive)
					adminSeasons.DELETE("", seasonHandler.Delete)
				}
			}

			adminCreateSeason := seasons.Group("")
			adminCreateSeason.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminCreateSeason.POST("", seasonHandler.Create)
			}
		}

		fixtures := api.Group("/fixtures")
		{
			fixtures.GET("", fixtureHandler.List)
			fixtures.GET("/next", fixtureHandler.Next)
			fixtures.GET("/upcoming", fixtureHandler.Upcoming)
			fixtures.GET("/recent", fixtureHandler.Recent)

			fixtureWithID := fixtures.Group("/:id")
			fixtureWithID.Use(middleware.ExtractUintParam("id", "fixtureID"))
			{
				fixtureWithID.GET("", fixtureHandler.Get)
				fixtureWithID.GET("/predictions", predictionHandler.ListForFixture)

				authedFixtures := fixtureWithID.Group("")
				authedFixtures.Use(authMiddleware.RequireAuth())
				{
					authedFixtures.GET("/prediction", predictionHandler.GetMine)
					authedFixtures.PUT("/prediction", authMiddleware.RequireVerifiedEmail(), predictionHandler.Submit)
				}

				adminFixtures := fixtureWithID.Group("")
				adminFixtures.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
				{
					adminFixtures.PUT("", fixtureHandler.Update)
					adminFixtures.DELETE("", fixtureHandler.Delete)
					adminFixtures.POST("/postpone", fixtureHandler.Postpone)
					adminFixtures.POST("/reschedule", fixtureHandler.Reschedule)
					adminFixtures.POST("/result", fixtureHandler.FinalizeScore)
				}
			}

			adminCreateFixture := fixtures.Group("")
			adminCreateFixture.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminCreateFixture.POST("", fixtureHandler.Create)
			}
		}

		predictions := api.Group("/predictions")
		predictions.Use(authMiddleware.RequireAuth())
		{
			predictions.GET("", predictionHandler.ListMine)
		}

		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.Global)
			leaderboard.GET("/form", leaderboardHandler.Form)
			leaderboard.GET("/month", leaderboardHandler.Month)
			leaderboard.GET("/export", authMiddleware.RequireAuth(), authMiddleware.AdminOnly(), leaderboardHandler.Export)
		}

		leagues := api.Group("/leagues")
		leagues.Use(authMiddleware.RequireAuth())
		{
			leagues.GET("", leagueHandler.ListMine)
			leagues.POST("", leagueHandler.Create)
			leagues.POST("/join", leagueHandler.Join)

			leagueWithID := leagues.Group("/:id")
			leagueWithID.Use(middleware.ExtractUintParam("id", "leagueID"))
			{
				leagueWithID.GET("", leagueHandler.Get)
				leagueWithID.GET("/standings", leagueHandler.Standings)
				leagueWithID.POST("/leave", leagueHandler.Leave)
				leagueWithID.DELETE("", leagueHandler.Delete)
			}
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/overview", adminHandler.Overview)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/admin", middleware.ExtractUintParam("id", "userID"), adminHandler.SetAdmin)
			admin.POST("/seasons/:id/rebuild", middleware.ExtractUintParam("id", "seasonID"), adminHandler.RebuildSeason)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
