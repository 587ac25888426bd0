package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authUsecase "admin-dashboard/internal/usecase/auth"
	"admin-dashboard/pkg/utils"
)

type AuthHandler struct {
	service *authUsecase.Service
}

func NewAuthHandler(service *authUsecase.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes wires the public auth endpoints. Logout is registered with
// optional authentication by the router so an audit entry can name the actor
// when one is present.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authUsecase.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	response, err := h.service.Login(c.Request.Context(), &req, requestMeta(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", response)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authUsecase.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizeString(req.Name)

	response, err := h.service.Register(c.Request.Context(), &req, requestMeta(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", response)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req authUsecase.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	response, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req authUsecase.LogoutRequest
	// The body is optional; logging out without a refresh token is a no-op.
	_ = c.ShouldBindJSON(&req)

	var actorID *uuid.UUID
	if userID, ok := authenticatedUserID(c); ok {
		actorID = &userID
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken, actorID, requestMeta(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	count, err := h.service.LogoutAll(c.Request.Context(), userID, requestMeta(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("Logged out from %d sessions", count)
	utils.SuccessResponse(c, http.StatusOK, message, gin.H{"revokedCount": count})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authUsecase.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if err := h.service.ForgotPassword(c.Request.Context(), &req, requestMeta(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authUsecase.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req, requestMeta(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func requestMeta(c *gin.Context) authUsecase.Meta {
	return authUsecase.Meta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
