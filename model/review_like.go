package model

import (
	"time"

	"gorm.io/gorm"
)

/*

ReviewLike is a "many-to-many" relation of user liking a review

UserID: user who liked
ReviewID: review being liked
CreatedAt: time when relation is created

Existence of a row is the source of truth for liked state; Review.LikesCount
is the cached derivative.

*/

type ReviewLike struct {
	UserID    string `gorm:"primaryKey"`
	ReviewID  string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (ReviewLike) BeforeCreate(db *gorm.DB) error {
	return nil
}
