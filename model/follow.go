package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Follow is a directed relation of one user following another

FollowerID: user doing the following
FollowedID: user being followed
CreatedAt: time when relation is created

The composite primary key doubles as the uniqueness constraint: at most one
edge per ordered pair. Self-follows are rejected at the handler.

*/

type Follow struct {
	FollowerID string `gorm:"primaryKey"`
	FollowedID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}

func (Follow) BeforeCreate(db *gorm.DB) error {
	return nil
}
