package service

import (
	"encoding/json"
	"fmt"
	"time"

	"lingolink/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HubNotifier pushes notifications to online users over WebSocket.
type HubNotifier interface {
	SendNotification(userID uuid.UUID, notification interface{}) bool
	IsUserOnline(userID uuid.UUID) bool
}

type NotificationService struct {
	db          *gorm.DB
	hubNotifier HubNotifier
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// SetHubNotifier wires the WebSocket hub (dependency injection).
func (s *NotificationService) SetHubNotifier(notifier HubNotifier) {
	s.hubNotifier = notifier
}

// createIn writes a notification row on the given handle, which may be a
// transaction owned by the caller.
func (s *NotificationService) createIn(db *gorm.DB, userID uuid.UUID, notifType, title string, meta *model.NotificationMetadata) (*model.Notification, error) {
	notification := &model.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   notifType,
		Title:  title,
	}

	if meta != nil {
		metaBytes, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		notification.Metadata = metaBytes
	}

	if err := db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// FriendRequestReceived records an incoming-request notification for the
// recipient.
func (s *NotificationService) FriendRequestReceived(tx *gorm.DB, req *model.FriendRequest, sender *model.User) (*model.Notification, error) {
	return s.createIn(tx, req.RecipientID, model.NotificationFriendRequest,
		sender.FullName+" sent you a friend request",
		&model.NotificationMetadata{
			RequestID:  &req.ID,
			FriendID:   &req.SenderID,
			FriendName: sender.FullName,
		})
}

// ConnectionFormed records the accepted connection for both parties, so
// either side can learn about the new friendship regardless of who sent
// the original request.
func (s *NotificationService) ConnectionFormed(tx *gorm.DB, req *model.FriendRequest, sender, recipient *model.User) ([]*model.Notification, error) {
	forSender, err := s.createIn(tx, req.SenderID, model.NotificationFriendAccepted,
		recipient.FullName+" accepted your friend request",
		&model.NotificationMetadata{
			RequestID:  &req.ID,
			FriendID:   &req.RecipientID,
			FriendName: recipient.FullName,
		})
	if err != nil {
		return nil, err
	}

	forRecipient, err := s.createIn(tx, req.RecipientID, model.NotificationFriendAccepted,
		"You are now connected with "+sender.FullName,
		&model.NotificationMetadata{
			RequestID:  &req.ID,
			FriendID:   &req.SenderID,
			FriendName: sender.FullName,
		})
	if err != nil {
		return nil, err
	}

	return []*model.Notification{forSender, forRecipient}, nil
}

// Push delivers notifications to their owners if online. Call after the
// surrounding transaction has committed.
func (s *NotificationService) Push(notifications ...*model.Notification) {
	if s.hubNotifier == nil {
		return
	}
	for _, n := range notifications {
		if n != nil && s.hubNotifier.IsUserOnline(n.UserID) {
			s.hubNotifier.SendNotification(n.UserID, n)
		}
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID uuid.UUID, limit, offset int, unreadOnly bool) ([]model.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	now := time.Now()
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
