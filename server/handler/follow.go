package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

// FollowUser creates the directed edge from the authenticated user to the
// target, plus exactly one FOLLOW notification for the target. Both writes
// share one transaction so a failed notification insert rolls back the edge.
func (h *Handler) FollowUser(c *gin.Context) {
	actorId := middlewares.UserId(c)
	targetId := c.Param("id")

	var target model.User
	result := h.DB.Where("id = ?", targetId).First(&target)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}
	if actorId == targetId {
		utils.AbortWithError(c, utils.NewValidationError("cannot follow yourself"))
		return
	}

	var existing int64
	if err := h.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", actorId, targetId).
		Count(&existing).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if existing > 0 {
		utils.AbortWithError(c, utils.NewConflictError("already following this user"))
		return
	}

	var actor model.User
	if err := h.DB.Where("id = ?", actorId).First(&actor).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Follow{
			FollowerID: actorId,
			FollowedID: targetId,
		}).Error; err != nil {
			// Return error will rollback
			return err
		}
		return tx.Create(&model.Notification{
			Id:      uuid.New().String(),
			UserID:  targetId,
			Type:    model.NotificationTypeFollow,
			Content: fmt.Sprintf("%s started following you", actor.Username),
			Payload: datatypes.JSON([]byte(fmt.Sprintf(`{"followerId":%q}`, actorId))),
		}).Error
	})
	if err != nil {
		// Two follow requests racing past the pre-check land here.
		if utils.IsUniqueViolation(err) {
			utils.AbortWithError(c, utils.NewConflictError("already following this user"))
			return
		}
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "followed"})
}

func (h *Handler) UnfollowUser(c *gin.Context) {
	actorId := middlewares.UserId(c)
	targetId := c.Param("id")

	var target model.User
	result := h.DB.Where("id = ?", targetId).First(&target)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}

	result = h.DB.Where("follower_id = ? AND followed_id = ?", actorId, targetId).
		Delete(&model.Follow{})
	if result.Error != nil {
		utils.AbortWithError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.AbortWithError(c, utils.NewNotFoundError("not following this user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// GetFollowers lists users following the target, most recent follow first.
// Public, no session required.
func (h *Handler) GetFollowers(c *gin.Context) {
	h.listFollowUsers(c, "follower_id", "followed_id", "followers")
}

// GetFollowing lists users the target follows, most recent follow first.
func (h *Handler) GetFollowing(c *gin.Context) {
	h.listFollowUsers(c, "followed_id", "follower_id", "following")
}

// listFollowUsers is the shared shape of the two follow listings: resolve
// the target, count the edges on the scoping side, page through users on
// the selecting side ordered by edge recency.
func (h *Handler) listFollowUsers(c *gin.Context, selectCol string, scopeCol string, field string) {
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

	var total int64
	if err := h.DB.Model(&model.Follow{}).
		Where(scopeCol+" = ?", targetId).
		Count(&total).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var users []model.User
	if err := h.DB.Model(&model.User{}).
		Joins("JOIN follows ON follows."+selectCol+" = users.id").
		Where("follows."+scopeCol+" = ?", targetId).
		Order("follows.created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, UserSummary{
			Id:             user.Id,
			Username:       user.Username,
			ProfilePicture: user.ProfilePicture,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		field:        summaries,
		"pagination": pagination.Envelope(total),
	})
}
