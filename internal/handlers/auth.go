package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/requestdata"
	"github.com/turathhub/archive-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	handlerLogger := log.With("handler", "AuthHandler")
	return &AuthHandler{log: handlerLogger, authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ah.authService.Register(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) GoogleLogin(c *gin.Context) {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ah.authService.LoginWithGoogle(c.Request.Context(), input.IDToken)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ah.authService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "signed out"})
}

// actorID pulls the authenticated user out of the request context.
// Returns uuid.Nil for anonymous requests.
func actorID(c *gin.Context) uuid.UUID {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}
