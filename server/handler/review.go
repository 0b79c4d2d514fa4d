package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

type createReviewInput struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

type reviewResponse struct {
	Id         string      `json:"id"`
	MovieID    string      `json:"movieId"`
	Rating     int         `json:"rating"`
	Content    string      `json:"content"`
	LikesCount int         `json:"likesCount"`
	CreatedAt  time.Time   `json:"createdAt"`
	User       UserSummary `json:"user"`
}

func (h *Handler) CreateReview(c *gin.Context) {
	userId := middlewares.UserId(c)
	movieId := c.Param("id")

	var input createReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}
	if input.Rating < 1 || input.Rating > 10 {
		utils.AbortWithError(c, utils.NewValidationError("rating must be between 1 and 10"))
		return
	}

	var movie model.Movie
	result := h.DB.Where("id = ?", movieId).First(&movie)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("movie not found"))
		return
	}

	var existing int64
	if err := h.DB.Model(&model.Review{}).
		Where("user_id = ? AND movie_id = ?", userId, movieId).
		Count(&existing).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if existing > 0 {
		utils.AbortWithError(c, utils.NewConflictError("you already reviewed this movie"))
		return
	}

	review := model.Review{
		Id:      uuid.New().String(),
		UserID:  userId,
		MovieID: movieId,
		Rating:  input.Rating,
		Content: input.Content,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			utils.AbortWithError(c, utils.NewConflictError("you already reviewed this movie"))
			return
		}
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview removes the authenticated user's own review together with
// its likes.
func (h *Handler) DeleteReview(c *gin.Context) {
	var review model.Review
	result := h.DB.Where("id = ?", c.Param("id")).First(&review)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("review not found"))
		return
	}
	if review.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("not your review"))
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.Id).Delete(&model.ReviewLike{}).Error; err != nil {
			// Return error will rollback
			return err
		}
		return tx.Where("id = ?", review.Id).Delete(&model.Review{}).Error
	})
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// GetMovieReviews lists a movie's reviews, most recent first, with the
// reviewer summary embedded.
func (h *Handler) GetMovieReviews(c *gin.Context) {
	movieId := c.Param("id")

	var movie model.Movie
	result := h.DB.Where("id = ?", movieId).First(&movie)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("movie not found"))
		return
	}

	h.listReviews(c, "movie_id", movieId)
}

// GetUserReviews lists reviews written by a user, most recent first.
func (h *Handler) GetUserReviews(c *gin.Context) {
	userId := c.Param("id")

	var user model.User
	result := h.DB.Where("id = ?", userId).First(&user)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}

	h.listReviews(c, "user_id", userId)
}

func (h *Handler) listReviews(c *gin.Context, scopeCol string, scopeId string) {
	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var total int64
	if err := h.DB.Model(&model.Review{}).
		Where(scopeCol+" = ?", scopeId).
		Count(&total).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var reviews []model.Review
	if err := h.DB.Preload("User").
		Where(scopeCol+" = ?", scopeId).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&reviews).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	responses := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := reviewResponse{
			Id:         review.Id,
			MovieID:    review.MovieID,
			Rating:     review.Rating,
			Content:    review.Content,
			LikesCount: review.LikesCount,
			CreatedAt:  review.CreatedAt,
		}
		if review.User != nil {
			resp.User = UserSummary{
				Id:             review.User.Id,
				Username:       review.User.Username,
				ProfilePicture: review.User.ProfilePicture,
			}
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    responses,
		"pagination": pagination.Envelope(total),
	})
}
