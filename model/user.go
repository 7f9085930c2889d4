package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a directory record: account identity plus the public profile
// shown in friend and recommendation listings.
type User struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email            string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName         string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Bio              string    `json:"bio" gorm:"type:text"`
	Location         string    `json:"location" gorm:"type:varchar(100)"`
	ProfilePic       string    `json:"profile_pic" gorm:"type:varchar(500)"`
	NativeLanguage   string    `json:"native_language" gorm:"type:varchar(50)"`
	LearningLanguage string    `json:"learning_language" gorm:"type:varchar(50)"`
	IsOnboarded      bool      `json:"is_onboarded" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the projection of a user embedded in request and friend
// listings. It carries only public attributes.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	ProfilePic string    `json:"profile_pic"`
	Bio        string    `json:"bio"`
	Location   string    `json:"location"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		FullName:   u.FullName,
		ProfilePic: u.ProfilePic,
		Bio:        u.Bio,
		Location:   u.Location,
	}
}
