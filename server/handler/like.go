package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

type likeInput struct {
	ReviewID string `json:"reviewId"`
	Action   string `json:"action"`
}

// LikeReview toggles a like edge on a review. The edge row and the cached
// LikesCount move in one transaction, so the counter tracks the edge count
// exactly: like adds the row and increments, unlike removes it and
// decrements.
func (h *Handler) LikeReview(c *gin.Context) {
	userId := middlewares.UserId(c)

	var input likeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}
	if input.ReviewID == "" {
		utils.AbortWithError(c, utils.NewValidationError("reviewId is required"))
		return
	}
	if input.Action != "like" && input.Action != "unlike" {
		utils.AbortWithError(c, utils.NewValidationError(`action must be "like" or "unlike"`))
		return
	}

	var review model.Review
	result := h.DB.Where("id = ?", input.ReviewID).First(&review)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("review not found"))
		return
	}
	if review.UserID == userId {
		utils.AbortWithError(c, utils.NewValidationError("cannot like your own review"))
		return
	}

	if input.Action == "like" {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&model.ReviewLike{
				UserID:   userId,
				ReviewID: review.Id,
			}).Error; err != nil {
				// Return error will rollback
				return err
			}
			return tx.Model(&model.Review{}).
				Where("id = ?", review.Id).
				Update("likes_count", gorm.Expr("likes_count + 1")).Error
		})
		if err != nil {
			if utils.IsUniqueViolation(err) {
				utils.AbortWithError(c, utils.NewConflictError("already liked this review"))
				return
			}
			utils.AbortWithError(c, err)
			return
		}
	} else {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			result := tx.Where("user_id = ? AND review_id = ?", userId, review.Id).
				Delete(&model.ReviewLike{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return utils.NewNotFoundError("you have not liked this review")
			}
			return tx.Model(&model.Review{}).
				Where("id = ?", review.Id).
				Update("likes_count", gorm.Expr("likes_count - 1")).Error
		})
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
	}

	var updated model.Review
	if err := h.DB.Where("id = ?", review.Id).First(&updated).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "likesCount": updated.LikesCount})
}

// GetLikeStatus reports whether the viewer has liked the review plus its
// current counter, used to hydrate UI state.
func (h *Handler) GetLikeStatus(c *gin.Context) {
	reviewId := c.Query("reviewId")
	if reviewId == "" {
		utils.AbortWithError(c, utils.NewValidationError("reviewId is required"))
		return
	}

	var review model.Review
	result := h.DB.Where("id = ?", reviewId).First(&review)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("review not found"))
		return
	}

	var liked int64
	if err := h.DB.Model(&model.ReviewLike{}).
		Where("user_id = ? AND review_id = ?", middlewares.UserId(c), reviewId).
		Count(&liked).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked > 0, "likesCount": review.LikesCount})
}
