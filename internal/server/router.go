package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/turathhub/archive-backend/internal/handlers"
	"github.com/turathhub/archive-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	HeritageHandler   *handlers.HeritageHandler
	SubmissionHandler *handlers.SubmissionHandler
	ProposalHandler   *handlers.ProposalHandler
	SocialHandler     *handlers.SocialHandler
	ProfileHandler    *handlers.ProfileHandler
	AllowedOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/google", cfg.AuthHandler.GoogleLogin)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)

		// Catalog browsing is public; a token, when present, adds
		// viewer-specific like state.
		browse := api.Group("/")
		browse.Use(cfg.AuthMiddleware.OptionalAuth())
		browse.GET("/objects", cfg.HeritageHandler.List)
		browse.GET("/objects/:id", cfg.HeritageHandler.Get)
		browse.GET("/objects/:id/comments", cfg.SocialHandler.ListComments)
		browse.GET("/members/:username", cfg.ProfileHandler.PublicProfile)
		browse.GET("/editable-fields", cfg.ProposalHandler.EditableFields)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	// Contributions
	protected.POST("/submissions", cfg.SubmissionHandler.Submit)
	protected.GET("/submissions/mine", cfg.SubmissionHandler.ListMine)
	protected.POST("/objects/:id/proposals", cfg.ProposalHandler.Propose)
	protected.POST("/objects/:id/proposals/inline", cfg.ProposalHandler.ProposeInline)
	protected.GET("/proposals/mine", cfg.ProposalHandler.ListMine)
	// Social
	protected.POST("/objects/:id/like", cfg.SocialHandler.ToggleObjectLike)
	protected.POST("/objects/:id/comments", cfg.SocialHandler.PostComment)
	protected.POST("/comments/:id/like", cfg.SocialHandler.ToggleCommentLike)
	protected.POST("/comments/:id/replies", cfg.SocialHandler.PostReply)
	protected.DELETE("/comments/:id", cfg.SocialHandler.DeleteComment)
	// Profile
	protected.GET("/dashboard", cfg.ProfileHandler.Dashboard)
	protected.PUT("/profile", cfg.ProfileHandler.UpdateProfile)

	// ===============
	// || Staff     ||
	// ===============
	staff := router.Group("/api/staff")
	staff.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireStaff())
	staff.GET("/submissions", cfg.SubmissionHandler.ListPending)
	staff.POST("/submissions/:id/review", cfg.SubmissionHandler.Review)
	staff.GET("/proposals", cfg.ProposalHandler.ListPending)
	staff.POST("/proposals/:id/review", cfg.ProposalHandler.Review)
	staff.POST("/objects", cfg.HeritageHandler.CreateDirect)

	return router
}
