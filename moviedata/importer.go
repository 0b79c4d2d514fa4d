package moviedata

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	Logger "github.com/reelcult/cultfilm-backend/utils/log"
)

type Importer struct {
	DB     *gorm.DB
	Client *CatalogClient
}

// ImportAll walks the catalog and upserts every movie. Safe to re-run: the
// external id keys the upsert, so an unchanged catalog leaves the table
// unchanged.
func (im *Importer) ImportAll() error {
	page := 1
	imported := 0
	for {
		movies, hasMore, err := im.Client.FetchPage(page)
		if err != nil {
			return err
		}
		for i := range movies {
			if err := im.upsertMovie(&movies[i]); err != nil {
				Logger.LogV2.Errorf("fail to import movie", movies[i].ExternalID, err)
				continue
			}
			imported += 1
		}
		if !hasMore {
			break
		}
		page += 1
	}
	Logger.LogV2.Infof(fmt.Sprintf("imported %d movies", imported))
	return nil
}

func (im *Importer) upsertMovie(in *CatalogMovie) error {
	if in.ExternalID == "" || in.Title == "" {
		return fmt.Errorf("catalog movie missing id or title")
	}

	movie := model.Movie{
		ExternalID: in.ExternalID,
		Title:      in.Title,
		Director:   in.Director,
		Synopsis:   in.Synopsis,
	}
	if in.ReleaseDate != "" {
		released, err := dateparse.ParseAny(in.ReleaseDate)
		if err == nil {
			movie.ReleaseDate = &released
			movie.ReleaseYear = released.Year()
		}
	}

	return im.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		result := tx.Where("external_id = ?", in.ExternalID).First(&existing)
		if result.RowsAffected == 1 {
			movie.Id = existing.Id
			movie.CreatedAt = existing.CreatedAt
			if err := tx.Save(&movie).Error; err != nil {
				// Return error will rollback
				return err
			}
		} else {
			movie.Id = uuid.New().String()
			if err := tx.Create(&movie).Error; err != nil {
				return err
			}
		}

		genres, err := findOrCreateGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		if err := tx.Model(&movie).Association("Genres").Replace(genres); err != nil {
			return err
		}

		platforms, err := findOrCreatePlatforms(tx, in.Platforms)
		if err != nil {
			return err
		}
		return tx.Model(&movie).Association("Platforms").Replace(platforms)
	})
}

func findOrCreateGenres(tx *gorm.DB, names []string) ([]*model.Genre, error) {
	genres := []*model.Genre{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var genre model.Genre
		result := tx.Where("name = ?", name).First(&genre)
		if result.RowsAffected != 1 {
			genre = model.Genre{Id: uuid.New().String(), Name: name}
			if err := tx.Create(&genre).Error; err != nil {
				return nil, err
			}
		}
		genres = append(genres, &genre)
	}
	return genres, nil
}

func findOrCreatePlatforms(tx *gorm.DB, names []string) ([]*model.Platform, error) {
	platforms := []*model.Platform{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var platform model.Platform
		result := tx.Where("name = ?", name).First(&platform)
		if result.RowsAffected != 1 {
			platform = model.Platform{Id: uuid.New().String(), Name: name}
			if err := tx.Create(&platform).Error; err != nil {
				return nil, err
			}
		}
		platforms = append(platforms, &platform)
	}
	return platforms, nil
}
