package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationFriendRequest  = "friend_request"  // a request arrived for you
	NotificationFriendAccepted = "friend_accepted" // a connection formed (written for both parties)
)

// Notification is a per-user event record. Connection-formed events are
// written for both parties at accept time, so neither side depends on the
// ledger's directionality to learn about a new friendship.
type Notification struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      string          `json:"type" gorm:"type:varchar(30);not null"`
	Title     string          `json:"title" gorm:"type:varchar(200);not null"`
	Content   *string         `json:"content,omitempty" gorm:"type:text"`
	Metadata  json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
	IsRead    bool            `json:"is_read" gorm:"default:false"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationMetadata is the parsed shape of the metadata field.
type NotificationMetadata struct {
	RequestID  *uuid.UUID `json:"request_id,omitempty"`
	FriendID   *uuid.UUID `json:"friend_id,omitempty"`
	FriendName string     `json:"friend_name,omitempty"`
}
