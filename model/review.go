package model

import (
	"time"
)

/*

Review is a data model for a user's take on a movie

Id: primary key
UserID/MovieID: author and subject; the composite unique index enforces at
most one review per (user, movie) pair
Rating: 1..10, validated at the handler
Content: review text
LikesCount: cached count of ReviewLike rows for this review. The like/unlike
mutation maintains it in the same transaction as the edge write, so it can
not drift from the edge count through this code path.
CreatedAt: time when entity is created

*/

type Review struct {
	Id         string `gorm:"primaryKey"`
	UserID     string `gorm:"uniqueIndex:idx_review_user_movie"`
	MovieID    string `gorm:"uniqueIndex:idx_review_user_movie"`
	Rating     int
	Content    string
	LikesCount int `gorm:"default:0"`
	CreatedAt  time.Time

	User  *User  `json:"user"`
	Movie *Movie `json:"movie"`
}
