package handler

import (
	"lingolink/middleware"
	"lingolink/service"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc *service.UserService
}

func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetRecommended lists onboarded users the caller could add. Users with
// an outstanding pending request still appear here.
func (h *UserHandler) GetRecommended(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	profiles, err := h.userSvc.Recommended(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, profiles)
}

// GetFriends lists the caller's friends.
func (h *UserHandler) GetFriends(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	friends, err := h.userSvc.Friends(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, friends)
}
