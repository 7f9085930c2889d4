package service

import (
	"fmt"
	"testing"

	"lingolink/model"
	"lingolink/utils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the full
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := utils.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newServices wires the directory, notification and coordinator services
// on a fresh test database.
func newServices(t *testing.T) (*gorm.DB, *UserService, *NotificationService, *FriendService) {
	t.Helper()
	db := newTestDB(t)
	users := NewUserService(db)
	notifs := NewNotificationService(db)
	friends := NewFriendService(db, users, notifs)
	return db, users, notifs, friends
}

// createUser inserts a fake onboarded user.
func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New(),
		Email:        gofakeit.Email(),
		PasswordHash: "irrelevant",
		FullName:     gofakeit.Name(),
		Bio:          gofakeit.Sentence(6),
		Location:     gofakeit.City(),
		ProfilePic:   gofakeit.URL(),
		IsOnboarded:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
