package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

type createListInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

func (h *Handler) CreateList(c *gin.Context) {
	var input createListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}
	if input.Name == "" {
		utils.AbortWithError(c, utils.NewValidationError("name is required"))
		return
	}

	list := model.MovieList{
		Id:          uuid.New().String(),
		UserID:      middlewares.UserId(c),
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}
	if err := h.DB.Create(&list).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// GetList returns one list with its movies. Private lists are visible to
// their owner only.
func (h *Handler) GetList(c *gin.Context) {
	var list model.MovieList
	result := h.DB.Preload("Movies").Where("id = ?", c.Param("id")).First(&list)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("list not found"))
		return
	}
	if !list.IsPublic && list.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("this list is private"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// GetUserLists pages through a user's lists, public ones only unless the
// requester is the owner.
func (h *Handler) GetUserLists(c *gin.Context) {
	targetId := c.Param("id")

	var target model.User
	result := h.DB.Where("id = ?", targetId).First(&target)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}

	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	scope := h.DB.Model(&model.MovieList{}).Where("user_id = ?", targetId)
	if middlewares.UserId(c) != targetId {
		scope = scope.Where("is_public = ?", true)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var lists []model.MovieList
	query := h.DB.Where("user_id = ?", targetId)
	if middlewares.UserId(c) != targetId {
		query = query.Where("is_public = ?", true)
	}
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&lists).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lists":      lists,
		"pagination": pagination.Envelope(total),
	})
}

func (h *Handler) DeleteList(c *gin.Context) {
	var list model.MovieList
	result := h.DB.Where("id = ?", c.Param("id")).First(&list)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("list not found"))
		return
	}
	if list.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("not your list"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_list_id = ?", list.Id).Delete(&model.MovieListItem{}).Error; err != nil {
			// Return error will rollback
			return err
		}
		return tx.Where("id = ?", list.Id).Delete(&model.MovieList{}).Error
	})
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "list deleted"})
}

type addListItemInput struct {
	MovieID string `json:"movieId"`
}

func (h *Handler) AddListItem(c *gin.Context) {
	var input addListItemInput
	if err := c.ShouldBindJSON(&input); err != nil || input.MovieID == "" {
		utils.AbortWithError(c, utils.NewValidationError("movieId is required"))
		return
	}

	var list model.MovieList
	result := h.DB.Where("id = ?", c.Param("id")).First(&list)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("list not found"))
		return
	}
	if list.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("not your list"))
		return
	}

	var movie model.Movie
	result = h.DB.Where("id = ?", input.MovieID).First(&movie)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("movie not found"))
		return
	}

	var existing int64
	if err := h.DB.Model(&model.MovieListItem{}).
		Where("movie_list_id = ? AND movie_id = ?", list.Id, movie.Id).
		Count(&existing).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if existing > 0 {
		utils.AbortWithError(c, utils.NewConflictError("movie is already in this list"))
		return
	}

	if err := h.DB.Create(&model.MovieListItem{
		ListID:  list.Id,
		MovieID: movie.Id,
	}).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			utils.AbortWithError(c, utils.NewConflictError("movie is already in this list"))
			return
		}
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "movie added"})
}

func (h *Handler) RemoveListItem(c *gin.Context) {
	var list model.MovieList
	result := h.DB.Where("id = ?", c.Param("id")).First(&list)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("list not found"))
		return
	}
	if list.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("not your list"))
		return
	}

	result = h.DB.Where("movie_list_id = ? AND movie_id = ?", list.Id, c.Param("movieId")).
		Delete(&model.MovieListItem{})
	if result.Error != nil {
		utils.AbortWithError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.AbortWithError(c, utils.NewNotFoundError("movie is not in this list"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "movie removed"})
}
