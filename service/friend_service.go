package service

import (
	"errors"
	"fmt"

	"lingolink/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendService coordinates the friend-request lifecycle and keeps the
// ledger consistent with the friendship graph. Accept runs its status
// flip, edge insert and notification writes in one transaction, gated by
// a compare-and-swap on the pending status, so a friendship can never be
// half-formed.
type FriendService struct {
	db     *gorm.DB
	users  *UserService
	notifs *NotificationService
}

func NewFriendService(db *gorm.DB, users *UserService, notifs *NotificationService) *FriendService {
	return &FriendService{db: db, users: users, notifs: notifs}
}

// SendRequest creates a pending ledger record from sender to recipient.
//
// Precondition order: distinct users, recipient exists, not already
// friends, no outstanding record between the pair in either direction.
// The unique index on the normalized pair key backs the last check, so
// two concurrent sends cannot both insert.
func (s *FriendService) SendRequest(senderID, recipientID uuid.UUID) error {
	if senderID == recipientID {
		return ErrSelfRequest
	}

	if _, err := s.users.GetByID(recipientID); err != nil {
		return err
	}
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return err
	}

	friends, err := s.users.IsFriend(senderID, recipientID)
	if err != nil {
		return err
	}
	if friends {
		return ErrAlreadyFriends
	}

	pairKey := model.PairKey(senderID, recipientID)

	var count int64
	err = s.db.Model(&model.FriendRequest{}).Where("pair_key = ?", pairKey).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check existing request: %w", err)
	}
	if count > 0 {
		return ErrRequestExists
	}

	request := &model.FriendRequest{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		PairKey:     pairKey,
		Status:      model.RequestStatusPending,
	}

	var created *model.Notification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRequestExists
			}
			return fmt.Errorf("failed to create friend request: %w", err)
		}

		n, err := s.notifs.FriendRequestReceived(tx, request, sender)
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		return err
	}

	s.notifs.Push(created)
	return nil
}

// AcceptRequest marks the request accepted and forms the friendship edge.
// Only the recipient may accept; a request that is no longer pending
// cannot be accepted again.
func (s *FriendService) AcceptRequest(requestID, actorID uuid.UUID) error {
	request, err := s.getRequest(requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != actorID {
		return ErrNotRecipient
	}

	sender, err := s.users.GetByID(request.SenderID)
	if err != nil {
		return err
	}
	recipient, err := s.users.GetByID(request.RecipientID)
	if err != nil {
		return err
	}

	var created []*model.Notification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// CAS: pending -> accepted; zero rows means another accept won
		res := tx.Model(&model.FriendRequest{}).
			Where("id = ? AND status = ?", requestID, model.RequestStatusPending).
			Update("status", model.RequestStatusAccepted)
		if res.Error != nil {
			return fmt.Errorf("failed to update request status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyHandled
		}

		if err := s.users.AddFriendEdgeTx(tx, request.SenderID, request.RecipientID); err != nil {
			return err
		}

		ns, err := s.notifs.ConnectionFormed(tx, request, sender, recipient)
		if err != nil {
			return err
		}
		created = ns
		return nil
	})
	if err != nil {
		return err
	}

	s.notifs.Push(created...)
	return nil
}

// RejectRequest deletes the ledger record. Only the recipient may reject.
// No friendship ever formed, so nothing else is touched, and the pair is
// free to exchange a fresh request.
func (s *FriendService) RejectRequest(requestID, actorID uuid.UUID) error {
	request, err := s.getRequest(requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != actorID {
		return ErrNotRecipient
	}

	if err := s.db.Delete(&model.FriendRequest{}, "id = ?", requestID).Error; err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	return nil
}

// ListIncoming returns pending requests addressed to the user, joined
// with each sender's public profile.
func (s *FriendService) ListIncoming(userID uuid.UUID) ([]model.FriendRequestView, error) {
	return s.listRequests("recipient_id", userID, model.RequestStatusPending)
}

// ListOutgoing returns pending requests the user has sent, joined with
// each recipient's public profile.
func (s *FriendService) ListOutgoing(userID uuid.UUID) ([]model.FriendRequestView, error) {
	return s.listRequests("sender_id", userID, model.RequestStatusPending)
}

// ListAcceptedForSender returns accepted requests the user sent, used to
// surface "your request was accepted" entries.
func (s *FriendService) ListAcceptedForSender(userID uuid.UUID) ([]model.FriendRequestView, error) {
	return s.listRequests("sender_id", userID, model.RequestStatusAccepted)
}

func (s *FriendService) getRequest(requestID uuid.UUID) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := s.db.Where("id = ?", requestID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query friend request: %w", err)
	}
	return &request, nil
}

// listRequests loads requests matching (column = userID, status) and joins
// the counterpart user's profile.
func (s *FriendService) listRequests(column string, userID uuid.UUID, status string) ([]model.FriendRequestView, error) {
	var requests []model.FriendRequest
	err := s.db.Where(column+" = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}

	if len(requests) == 0 {
		return []model.FriendRequestView{}, nil
	}

	// collect counterpart ids and load their profiles in one query
	counterpartIDs := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		if column == "recipient_id" {
			counterpartIDs = append(counterpartIDs, r.SenderID)
		} else {
			counterpartIDs = append(counterpartIDs, r.RecipientID)
		}
	}

	var users []model.User
	if err := s.db.Where("id IN ?", counterpartIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query request counterparts: %w", err)
	}
	profiles := make(map[uuid.UUID]model.Profile, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].Profile()
	}

	views := make([]model.FriendRequestView, 0, len(requests))
	for _, r := range requests {
		view := model.FriendRequestView{
			ID:        r.ID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if column == "recipient_id" {
			if p, ok := profiles[r.SenderID]; ok {
				view.Sender = &p
			}
		} else {
			if p, ok := profiles[r.RecipientID]; ok {
				view.Recipient = &p
			}
		}
		views = append(views, view)
	}
	return views, nil
}
