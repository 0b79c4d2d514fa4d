package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is a data model for a cultfilm account

Id: primary key, use to identify a user
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Username: unique handle shown next to reviews and in follower listings
Email: unique, used at login and carries the verification state below
PasswordHash: bcrypt hash, never serialized
ProfilePicture: user's icon URL
Biography: free-form profile text
Verified: whether the email address has been confirmed

*/

type User struct {
	Id             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	DeletedAt      gorm.DeletedAt
	Username       string `gorm:"uniqueIndex"`
	Email          string `gorm:"uniqueIndex"`
	PasswordHash   string `json:"-"`
	ProfilePicture string
	Biography      string
	Verified       bool `gorm:"default:FALSE"`
}

func (User) BeforeCreate(db *gorm.DB) error {
	return nil
}
