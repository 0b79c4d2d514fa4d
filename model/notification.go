package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Notification is a data model for a message shown on a user's bell menu

Id: primary key
UserID: recipient, always the user whose action did NOT create the row
Type: one of the NotificationType constants below
Content: human readable one-liner, e.g. "ed_wood started following you"
Payload: type-specific JSON, e.g. {"followerId": "..."} for a follow
IsRead: unread notifications sort before read ones in listings
CreatedAt: time when entity is created

*/

type NotificationType string

const (
	NotificationTypeFollow NotificationType = "FOLLOW"
	NotificationTypeLike   NotificationType = "LIKE"
	NotificationTypeList   NotificationType = "LIST"
)

type Notification struct {
	Id        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Type      NotificationType
	Content   string
	Payload   datatypes.JSON
	IsRead    bool `gorm:"default:FALSE"`
	CreatedAt time.Time
}
