package model

import (
	"time"
)

/*

Movie is a data model for a film in the catalog

Id: primary key
ExternalID: id of this title in the upstream catalog API, used by the
importer to make re-imports idempotent
Title: display title
Director: director credit as a single string
ReleaseYear: year used by the exact-year filter and the default sort
ReleaseDate: full release date when the upstream catalog provides one
Synopsis: short description
Genres: flattened into a name list in API responses, "many-to-many" relation
Platforms: streaming platforms carrying this title, "many-to-many" relation

*/

type Movie struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	ExternalID  string `gorm:"uniqueIndex"`
	Title       string
	Director    string
	ReleaseYear int
	ReleaseDate *time.Time
	Synopsis    string
	Genres      []*Genre    `json:"genres" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Platforms   []*Platform `json:"platforms" gorm:"many2many:movie_platforms;constraint:OnDelete:CASCADE;"`
}

type Genre struct {
	Id   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

type Platform struct {
	Id   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}
