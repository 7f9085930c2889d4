package model

import (
	"time"

	"github.com/google/uuid"
)

// Friend request statuses. There is no rejected status: rejection deletes
// the record, which frees the pair for a fresh request later.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

// FriendRequest is a directed ledger record. PairKey is the normalized
// unordered pair of sender and recipient; its unique index guarantees at
// most one outstanding record per pair even under concurrent sends.
type FriendRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `json:"sender_id" gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `json:"recipient_id" gorm:"type:uuid;not null;index"`
	PairKey     string    `json:"-" gorm:"type:varchar(80);not null;uniqueIndex"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// FriendRequestView is a ledger record joined with the counterpart's
// public profile, as returned by the listing endpoints.
type FriendRequestView struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Sender    *Profile  `json:"sender,omitempty"`
	Recipient *Profile  `json:"recipient,omitempty"`
}
