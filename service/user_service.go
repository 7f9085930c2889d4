package service

import (
	"errors"
	"fmt"

	"lingolink/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService is the user directory: profile lookups plus the friendship
// edge table. Edges are stored once per pair (normalized order), so a
// single row answers membership for both users.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID returns the user or ErrUserNotFound.
func (s *UserService) GetByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns the user or ErrUserNotFound. Email comparison is
// case-sensitive.
func (s *UserService) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// AddFriendEdge inserts the friendship edge for {a, b}. Re-adding an
// existing edge is a no-op.
func (s *UserService) AddFriendEdge(a, b uuid.UUID) error {
	return s.AddFriendEdgeTx(s.db, a, b)
}

// AddFriendEdgeTx is AddFriendEdge running on the caller's transaction.
func (s *UserService) AddFriendEdgeTx(tx *gorm.DB, a, b uuid.UUID) error {
	lo, hi := model.NormalizePair(a, b)
	edge := &model.Friendship{
		ID:    uuid.New(),
		UserA: lo,
		UserB: hi,
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	if err != nil {
		return fmt.Errorf("failed to add friend edge: %w", err)
	}
	return nil
}

// IsFriend reports whether an edge exists between the two users.
func (s *UserService) IsFriend(a, b uuid.UUID) (bool, error) {
	lo, hi := model.NormalizePair(a, b)
	var count int64
	err := s.db.Model(&model.Friendship{}).
		Where("user_a = ? AND user_b = ?", lo, hi).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count > 0, nil
}

// friendIDs returns the ids of all friends of the user.
func (s *UserService) friendIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var edges []model.Friendship
	err := s.db.Where("user_a = ? OR user_b = ?", userID, userID).Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query friendships: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(edges))
	for _, e := range edges {
		if e.UserA == userID {
			ids = append(ids, e.UserB)
		} else {
			ids = append(ids, e.UserA)
		}
	}
	return ids, nil
}

// Friends returns the public profiles of the user's friends.
func (s *UserService) Friends(userID uuid.UUID) ([]model.Profile, error) {
	ids, err := s.friendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Profile{}, nil
	}

	var users []model.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// Recommended returns onboarded users the given user could add: everyone
// except themselves and their current friends. Counterparts of pending
// requests are intentionally not excluded.
func (s *UserService) Recommended(userID uuid.UUID) ([]model.Profile, error) {
	ids, err := s.friendIDs(userID)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("id <> ? AND is_onboarded = ?", userID, true)
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}
