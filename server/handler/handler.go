package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

// It serves as dependency injection for the handler set, add any
// dependencies you require here.

type Handler struct {
	DB       *gorm.DB
	Sessions utils.SessionStore
}

func New(db *gorm.DB, sessions utils.SessionStore) *Handler {
	return &Handler{DB: db, Sessions: sessions}
}

// RegisterRoutes attaches the whole REST surface under /api.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)
	api.POST("/logout", middlewares.Auth(), h.Logout)
	api.GET("/me", middlewares.Auth(), h.Me)
	api.POST("/me", middlewares.Auth(), h.UpdateMe)
	api.POST("/me/verify", middlewares.Auth(), h.VerifyEmail)

	api.GET("/users/:id", h.GetUser)
	api.GET("/users/:id/followers", h.GetFollowers)
	api.GET("/users/:id/following", h.GetFollowing)
	api.GET("/users/:id/reviews", h.GetUserReviews)
	api.GET("/users/:id/lists", middlewares.OptionalAuth(), h.GetUserLists)
	api.POST("/users/:id/follow", middlewares.Auth(), h.FollowUser)
	api.DELETE("/users/:id/follow", middlewares.Auth(), h.UnfollowUser)

	api.GET("/notifications", middlewares.Auth(), h.GetNotifications)
	api.GET("/notifications/unread-count", middlewares.Auth(), h.GetUnreadCount)
	api.POST("/notifications/read/:id", middlewares.Auth(), h.MarkNotificationRead)
	api.POST("/notifications/read-all", middlewares.Auth(), h.MarkAllNotificationsRead)

	api.GET("/movies", h.GetMovies)
	api.GET("/movies/:id", h.GetMovie)
	api.GET("/movies/:id/reviews", h.GetMovieReviews)
	api.POST("/movies/:id/reviews", middlewares.Auth(), h.CreateReview)

	api.DELETE("/reviews/:id", middlewares.Auth(), h.DeleteReview)
	api.GET("/reviews/like", middlewares.Auth(), h.GetLikeStatus)
	api.POST("/reviews/like", middlewares.Auth(), h.LikeReview)

	api.POST("/lists", middlewares.Auth(), h.CreateList)
	api.GET("/lists/:id", middlewares.OptionalAuth(), h.GetList)
	api.DELETE("/lists/:id", middlewares.Auth(), h.DeleteList)
	api.POST("/lists/:id/items", middlewares.Auth(), h.AddListItem)
	api.DELETE("/lists/:id/items/:movieId", middlewares.Auth(), h.RemoveListItem)
}

// UserSummary is the shape of a user embedded in listings.
type UserSummary struct {
	Id             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}
