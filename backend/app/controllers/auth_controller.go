package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeblessed/backend/app/dto"
	jwtutil "timeblessed/backend/app/jwt"
	"timeblessed/backend/app/services"
)

type AuthController struct {
	Auth   *services.AuthService
	Signer *jwtutil.Signer
}

func NewAuthController(auth *services.AuthService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Auth: auth, Signer: signer}
}

func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing credentials"})
		return
	}
	if err := a.Auth.ValidatePassword(req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	token, err := a.Signer.Sign(services.AdminSubject, services.AdminRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token})
}

func (a *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch err := a.Auth.ChangePassword(req.Current, req.New); {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}
