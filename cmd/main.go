package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/turathhub/archive-backend/internal/db"
	"github.com/turathhub/archive-backend/internal/handlers"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/middleware"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/server"
	"github.com/turathhub/archive-backend/internal/services"
	"github.com/turathhub/archive-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	utils.LoadDotEnv(log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	googleClientID := utils.GetEnv("GOOGLE_CLIENT_ID", "", log)
	port := utils.GetEnv("PORT", "8080", log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	heritageRepo := repos.NewHeritageRepo(thePG, log)
	submissionRepo := repos.NewSubmissionRepo(thePG, log)
	proposalRepo := repos.NewProposalRepo(thePG, log)
	commentRepo := repos.NewCommentRepo(thePG, log)
	heritageLikeRepo := repos.NewHeritageLikeRepo(thePG, log)
	commentLikeRepo := repos.NewCommentLikeRepo(thePG, log)

	// Expired sessions from previous runs have no way to refresh;
	// clear them on boot.
	if removed, err := userTokenRepo.DeleteExpired(context.Background(), nil, time.Now()); err != nil {
		log.Warn("Expired token cleanup failed", "error", err)
	} else if removed > 0 {
		log.Info("Removed expired sessions", "count", removed)
	}

	// Services
	log.Info("Setting up services...")
	googleVerifier := services.NewGoogleVerifier(googleClientID, log)
	authService := services.NewAuthService(thePG, userRepo, profileRepo, userTokenRepo, googleVerifier, jwtSecretKey, log)
	heritageService := services.NewHeritageService(thePG, heritageRepo, heritageLikeRepo, userRepo, log)
	submissionService := services.NewSubmissionService(thePG, submissionRepo, heritageRepo, userRepo, profileRepo, log)
	proposalService := services.NewProposalService(thePG, proposalRepo, heritageRepo, userRepo, profileRepo, log)
	socialService := services.NewSocialService(thePG, commentRepo, heritageLikeRepo, commentLikeRepo, heritageRepo, userRepo, profileRepo, submissionRepo, log)
	profileService := services.NewProfileService(thePG, userRepo, profileRepo, submissionRepo, proposalRepo, commentRepo, heritageLikeRepo, commentLikeRepo, log)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(log, authService)
	heritageHandler := handlers.NewHeritageHandler(log, heritageService, socialService)
	submissionHandler := handlers.NewSubmissionHandler(log, submissionService)
	proposalHandler := handlers.NewProposalHandler(log, proposalService)
	socialHandler := handlers.NewSocialHandler(log, socialService)
	profileHandler := handlers.NewProfileHandler(log, profileService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService, userRepo)

	// Router
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		HeritageHandler:   heritageHandler,
		SubmissionHandler: submissionHandler,
		ProposalHandler:   proposalHandler,
		SocialHandler:     socialHandler,
		ProfileHandler:    profileHandler,
		AllowedOrigins:    origins,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
