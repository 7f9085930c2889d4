package handler

import (
	"errors"

	"lingolink/middleware"
	"lingolink/service"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FriendHandler struct {
	friendSvc *service.FriendService
}

func NewFriendHandler(friendSvc *service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// respondFriendError maps coordinator errors onto the HTTP contract.
func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrRequestExists):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRequestNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotRecipient):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrAlreadyHandled):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// SendRequest sends a friend request to the user in the path.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	recipientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	if err := h.friendSvc.SendRequest(userID, recipientID); err != nil {
		respondFriendError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "friend request sent successfully", nil)
}

// AcceptRequest accepts the request in the path; recipient only.
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid request id")
		return
	}

	if err := h.friendSvc.AcceptRequest(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "friend request accepted", nil)
}

// RejectRequest rejects (deletes) the request in the path; recipient only.
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid request id")
		return
	}

	if err := h.friendSvc.RejectRequest(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "friend request rejected successfully", nil)
}

// GetRequests returns pending incoming requests plus accepted requests
// the caller sent.
func (h *FriendHandler) GetRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	incoming, err := h.friendSvc.ListIncoming(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	accepted, err := h.friendSvc.ListAcceptedForSender(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"incoming_requests": incoming,
		"accepted_requests": accepted,
	})
}

// GetOutgoingRequests returns pending requests the caller sent.
func (h *FriendHandler) GetOutgoingRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	outgoing, err := h.friendSvc.ListOutgoing(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, outgoing)
}
