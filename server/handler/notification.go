package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

// GetNotifications lists the authenticated user's notifications. Unlike the
// other listings this one is a two-key sort: unread first, then recency.
func (h *Handler) GetNotifications(c *gin.Context) {
	userId := middlewares.UserId(c)

	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var total int64
	if err := h.DB.Model(&model.Notification{}).
		Where("user_id = ?", userId).
		Count(&total).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var notifications []model.Notification
	if err := h.DB.Where("user_id = ?", userId).
		Order("is_read ASC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&notifications).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    pagination.Envelope(total),
	})
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	var count int64
	if err := h.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", middlewares.UserId(c), false).
		Count(&count).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead transitions one notification unread->read. Only the
// recipient may do so; repeating the call is a no-op, not an error.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	var notification model.Notification
	result := h.DB.Where("id = ?", c.Param("id")).First(&notification)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("notification not found"))
		return
	}
	if notification.UserID != middlewares.UserId(c) {
		utils.AbortWithError(c, utils.NewAuthorizationError("not your notification"))
		return
	}

	if err := h.DB.Model(&model.Notification{}).
		Where("id = ?", notification.Id).
		Update("is_read", true).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", middlewares.UserId(c), false).
		Update("is_read", true).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all marked as read"})
}
