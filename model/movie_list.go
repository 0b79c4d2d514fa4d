package model

import (
	"time"

	"gorm.io/gorm"
)

/*

MovieList is a data model for a user-curated list of movies

Id: primary key
UserID: owner; only the owner can mutate the list or see it while private
Name: display name
Description: free-form text
IsPublic: whether non-owners can read the list
CreatedAt: time when entity is created

*/

type MovieList struct {
	Id          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	Name        string
	Description string
	IsPublic    bool `gorm:"default:FALSE"`
	CreatedAt   time.Time

	Movies []*Movie `json:"movies" gorm:"many2many:movie_list_items;constraint:OnDelete:CASCADE;"`
}

/*

MovieListItem is a "many-to-many" relation of a list containing a movie

ListID: list id
MovieID: movie id
CreatedAt: time when relation is created

The composite primary key prevents duplicate entries in one list.

*/

type MovieListItem struct {
	ListID    string `gorm:"primaryKey;column:movie_list_id"`
	MovieID   string `gorm:"primaryKey;column:movie_id"`
	CreatedAt time.Time
}

func (MovieListItem) BeforeCreate(db *gorm.DB) error {
	return nil
}
