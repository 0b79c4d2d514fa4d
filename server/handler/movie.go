package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/utils"
)

// sortableMovieFields is the allow-list for the sortBy query parameter. The
// client-supplied name is never spliced into the query directly.
var sortableMovieFields = map[string]string{
	"title":        "title",
	"release_year": "release_year",
	"created_at":   "created_at",
}

type movieResponse struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	Director      string   `json:"director"`
	ReleaseYear   int      `json:"releaseYear"`
	Synopsis      string   `json:"synopsis"`
	AverageRating *float64 `json:"averageRating"`
	Genres        []string `json:"genres"`
	Platforms     []string `json:"platforms"`
}

// applyMovieFilters narrows the query by the optional title/director/genre
// substring and exact-year filters, combined with AND. With no filters set
// the query is left untouched and matches all rows.
func applyMovieFilters(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	if title := c.Query("title"); title != "" {
		query = query.Where("LOWER(movies.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if director := c.Query("director"); director != "" {
		query = query.Where("LOWER(movies.director) LIKE ?", "%"+strings.ToLower(director)+"%")
	}
	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			return nil, utils.NewValidationError("year must be an integer")
		}
		query = query.Where("movies.release_year = ?", parsed)
	}
	if genre := c.Query("genre"); genre != "" {
		query = query.Where(
			"movies.id IN (SELECT movie_genres.movie_id FROM movie_genres JOIN genres ON genres.id = movie_genres.genre_id WHERE LOWER(genres.name) LIKE ?)",
			"%"+strings.ToLower(genre)+"%")
	}
	return query, nil
}

func (h *Handler) GetMovies(c *gin.Context) {
	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	sortBy := c.DefaultQuery("sortBy", "release_year")
	column, ok := sortableMovieFields[sortBy]
	if !ok {
		utils.AbortWithError(c, utils.NewValidationError("sortBy must be one of title, release_year, created_at"))
		return
	}
	sortOrder := c.DefaultQuery("sortOrder", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		utils.AbortWithError(c, utils.NewValidationError("sortOrder must be asc or desc"))
		return
	}

	filtered, err := applyMovieFilters(c, h.DB.Model(&model.Movie{}))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	// Count consumed the statement; rebuild the filter chain for the page.
	filtered, err = applyMovieFilters(c, h.DB.Model(&model.Movie{}))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var movies []model.Movie
	if err := filtered.
		Preload("Genres").
		Preload("Platforms").
		Order("movies." + column + " " + sortOrder).
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&movies).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	ratings, err := h.averageRatings(movies)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	responses := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		responses = append(responses, buildMovieResponse(movie, ratings[movie.Id]))
	}

	c.JSON(http.StatusOK, gin.H{
		"movies":     responses,
		"pagination": pagination.Envelope(total),
	})
}

func (h *Handler) GetMovie(c *gin.Context) {
	var movie model.Movie
	result := h.DB.Preload("Genres").Preload("Platforms").
		Where("id = ?", c.Param("id")).First(&movie)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("movie not found"))
		return
	}

	var reviewCount int64
	if err := h.DB.Model(&model.Review{}).
		Where("movie_id = ?", movie.Id).
		Count(&reviewCount).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	ratings, err := h.averageRatings([]model.Movie{movie})
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	resp := buildMovieResponse(movie, ratings[movie.Id])
	c.JSON(http.StatusOK, gin.H{
		"movie":       resp,
		"reviewCount": reviewCount,
	})
}

type movieRating struct {
	MovieID   string
	AvgRating float64
}

// averageRatings computes the arithmetic mean review rating for each movie
// on the page. Movies with zero reviews are absent from the result, which
// buildMovieResponse surfaces as null.
func (h *Handler) averageRatings(movies []model.Movie) (map[string]*float64, error) {
	ratings := map[string]*float64{}
	if len(movies) == 0 {
		return ratings, nil
	}

	ids := make([]string, 0, len(movies))
	for _, movie := range movies {
		ids = append(ids, movie.Id)
	}

	var rows []movieRating
	if err := h.DB.Model(&model.Review{}).
		Select("movie_id, AVG(rating) AS avg_rating").
		Where("movie_id IN ?", ids).
		Group("movie_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		ratings[rows[i].MovieID] = &rows[i].AvgRating
	}
	return ratings, nil
}

func buildMovieResponse(movie model.Movie, avgRating *float64) movieResponse {
	genres := make([]string, 0, len(movie.Genres))
	for _, genre := range movie.Genres {
		genres = append(genres, genre.Name)
	}
	platforms := make([]string, 0, len(movie.Platforms))
	for _, platform := range movie.Platforms {
		platforms = append(platforms, platform.Name)
	}
	return movieResponse{
		Id:            movie.Id,
		Title:         movie.Title,
		Director:      movie.Director,
		ReleaseYear:   movie.ReleaseYear,
		Synopsis:      movie.Synopsis,
		AverageRating: avgRating,
		Genres:        genres,
		Platforms:     platforms,
	}
}
