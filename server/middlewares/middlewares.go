package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelcult/cultfilm-backend/utils"
)

const userIdKey = "userId"

var (
	// sessionStore resolves opaque tokens to user ids. Before any middleware
	// is used, make sure it's initialized correctly via Setup.
	sessionStore utils.SessionStore
)

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used. Calling it again replaces the store, which keeps
// hot-reload environments from holding two live clients.
func Setup(store utils.SessionStore) {
	sessionStore = store
}

// Auth fetches the session token in the http header, looking for field
// "token", resolves it to a user id and stores the id on the request
// context. It aborts with 401 on token not provided or token is invalid
// (wrong token or expired).
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "empty session token"})
			c.Abort()
			return
		}

		userId, err := sessionStore.Resolve(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			c.Abort()
			return
		}
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			c.Abort()
			return
		}

		c.Set(userIdKey, userId)
		c.Next()
	}
}

// OptionalAuth resolves the token when present but lets unauthenticated
// requests through. Handlers serving both public and owner views use this.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token != "" {
			userId, err := sessionStore.Resolve(c.Request.Context(), token)
			if err == nil && userId != "" {
				c.Set(userIdKey, userId)
			}
		}
		c.Next()
	}
}

// UserId returns the authenticated user's id stored by Auth, or "" when the
// request is unauthenticated.
func UserId(c *gin.Context) string {
	return c.GetString(userIdKey)
}
