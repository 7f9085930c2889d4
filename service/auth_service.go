package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"lingolink/middleware"
	"lingolink/model"
	"lingolink/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService owns the account lifecycle: signup, login and onboarding.
// Chat-provider sync is best effort everywhere; a provider outage never
// fails the primary operation.
type AuthService struct {
	db            *gorm.DB
	chat          *ChatService
	avatarBaseURL string
	tokenTTL      time.Duration
}

func NewAuthService(db *gorm.DB, chat *ChatService, avatarBaseURL string, jwtExpireHrs int) *AuthService {
	return &AuthService{
		db:            db,
		chat:          chat,
		avatarBaseURL: avatarBaseURL,
		tokenTTL:      time.Duration(jwtExpireHrs) * time.Hour,
	}
}

// Signup creates an account with a random avatar and returns the user
// plus a session token. Duplicate email fails with ErrEmailTaken.
func (s *AuthService) Signup(email, password, fullName string) (*model.User, string, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		ProfilePic:   fmt.Sprintf("%s/%d.png", s.avatarBaseURL, rand.Intn(100)+1),
		Location:     "Not specified",
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.syncChatUser(user)

	token, err := middleware.IssueToken(user.ID, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a session token.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	var user model.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query user: %w", err)
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := middleware.IssueToken(user.ID, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return &user, token, nil
}

// OnboardInput carries the profile fields completed during onboarding.
type OnboardInput struct {
	FullName         string
	Bio              string
	Location         string
	NativeLanguage   string
	LearningLanguage string
	ProfilePic       string
}

// Onboard completes the user's profile and flips the onboarded flag.
func (s *AuthService) Onboard(userID uuid.UUID, in OnboardInput) (*model.User, error) {
	var user model.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.FullName = in.FullName
	user.Bio = in.Bio
	user.Location = in.Location
	user.IsOnboarded = true
	if in.NativeLanguage != "" {
		user.NativeLanguage = in.NativeLanguage
	}
	if in.LearningLanguage != "" {
		user.LearningLanguage = in.LearningLanguage
	}
	if in.ProfilePic != "" {
		user.ProfilePic = in.ProfilePic
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.syncChatUser(&user)
	return &user, nil
}

// syncChatUser mirrors the profile to the chat provider, logging failures.
func (s *AuthService) syncChatUser(user *model.User) {
	if s.chat == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.chat.UpsertUser(ctx, user); err != nil {
		log.Printf("[WARN] chat user sync failed for %s: %v", user.ID, err)
	}
}
