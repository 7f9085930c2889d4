package model

import (
	"time"

	"github.com/google/uuid"
)

// Friendship is one undirected edge in the friendship graph. The pair is
// normalized (UserA < UserB by string order) so a single row represents
// the relationship for both users, and the unique index makes edge
// insertion naturally idempotent.
type Friendship struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserA     uuid.UUID `json:"user_a" gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair,priority:1"`
	UserB     uuid.UUID `json:"user_b" gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// NormalizePair orders two user ids so {a, b} and {b, a} map to the same
// (UserA, UserB) pair.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// PairKey returns the normalized "<low>:<high>" key for an unordered user
// pair. The friend-request ledger keeps a unique index on it.
func PairKey(a, b uuid.UUID) string {
	lo, hi := NormalizePair(a, b)
	return lo.String() + ":" + hi.String()
}
