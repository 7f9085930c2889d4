package handler

import (
	"errors"

	"lingolink/middleware"
	"lingolink/service"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
	userSvc *service.UserService
}

func NewAuthHandler(authSvc *service.AuthService, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

// Signup creates an account and returns the user with a session token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authSvc.Signup(req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.BadRequest(c, "email already exists, please use a different one")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"user": user, "token": token})
}

// Login verifies credentials and returns the user with a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.Unauthorized(c, "invalid email or password")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user, "token": token})
}

// Logout is an acknowledgement only; session tokens are stateless.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessWithMessage(c, "logged out successfully", nil)
}

// Onboard completes the profile and marks the user onboarded.
func (h *AuthHandler) Onboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		FullName         string `json:"full_name" binding:"required"`
		Bio              string `json:"bio" binding:"required"`
		Location         string `json:"location" binding:"required"`
		NativeLanguage   string `json:"native_language"`
		LearningLanguage string `json:"learning_language"`
		ProfilePic       string `json:"profile_pic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authSvc.Onboard(userID, service.OnboardInput{
		FullName:         req.FullName,
		Bio:              req.Bio,
		Location:         req.Location,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		ProfilePic:       req.ProfilePic,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	user, err := h.userSvc.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}
