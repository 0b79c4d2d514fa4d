package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelcult/cultfilm-backend/model"
	"github.com/reelcult/cultfilm-backend/server/middlewares"
	"github.com/reelcult/cultfilm-backend/utils"
)

const minPasswordLen = 8

type signupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Username == "" || input.Email == "" {
		utils.AbortWithError(c, utils.NewValidationError("username and email are required"))
		return
	}
	if !strings.Contains(input.Email, "@") {
		utils.AbortWithError(c, utils.NewValidationError("email is invalid"))
		return
	}
	if len(input.Password) < minPasswordLen {
		utils.AbortWithError(c, utils.NewValidationError("password must be at least 8 characters"))
		return
	}

	var count int64
	if err := h.DB.Model(&model.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&count).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if count > 0 {
		utils.AbortWithError(c, utils.NewConflictError("username or email already taken"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// Two signups racing for the same handle: the unique index wins.
		if utils.IsUniqueViolation(err) {
			utils.AbortWithError(c, utils.NewConflictError("username or email already taken"))
			return
		}
		utils.AbortWithError(c, err)
		return
	}

	var summary UserSummary
	copier.Copy(&summary, &user)
	c.JSON(http.StatusOK, gin.H{"user": summary})
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}

	var user model.User
	result := h.DB.Where("username = ?", input.Username).First(&user)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewAuthenticationError("invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.AbortWithError(c, utils.NewAuthenticationError("invalid username or password"))
		return
	}

	token, err := h.Sessions.Create(c.Request.Context(), user.Id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Revoke(c.Request.Context(), c.GetHeader("token")); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type profileResponse struct {
	Id             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Biography      string `json:"biography"`
	Verified       bool   `json:"verified"`
}

func (h *Handler) Me(c *gin.Context) {
	var user model.User
	result := h.DB.Where("id = ?", middlewares.UserId(c)).First(&user)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}

	var profile profileResponse
	copier.Copy(&profile, &user)
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

type updateProfileInput struct {
	ProfilePicture *string `json:"profilePicture"`
	Biography      *string `json:"biography"`
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortWithError(c, utils.NewValidationError("malformed request body"))
		return
	}

	updates := map[string]interface{}{}
	if input.ProfilePicture != nil {
		updates["profile_picture"] = *input.ProfilePicture
	}
	if input.Biography != nil {
		updates["biography"] = *input.Biography
	}
	if len(updates) == 0 {
		utils.AbortWithError(c, utils.NewValidationError("nothing to update"))
		return
	}

	if err := h.DB.Model(&model.User{}).
		Where("id = ?", middlewares.UserId(c)).
		Updates(updates).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// VerifyEmail flips the verification state for the authenticated user. Mail
// delivery happens outside this service; this is only the state transition.
func (h *Handler) VerifyEmail(c *gin.Context) {
	if err := h.DB.Model(&model.User{}).
		Where("id = ?", middlewares.UserId(c)).
		Update("verified", true).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

func (h *Handler) GetUser(c *gin.Context) {
	var user model.User
	result := h.DB.Where("id = ?", c.Param("id")).First(&user)
	if result.RowsAffected != 1 {
		utils.AbortWithError(c, utils.NewNotFoundError("user not found"))
		return
	}

	var followers, following int64
	if err := h.DB.Model(&model.Follow{}).Where("followed_id = ?", user.Id).Count(&followers).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := h.DB.Model(&model.Follow{}).Where("follower_id = ?", user.Id).Count(&following).Error; err != nil {
		utils.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":             user.Id,
			"username":       user.Username,
			"profilePicture": user.ProfilePicture,
			"biography":      user.Biography,
			"followersCount": followers,
			"followingCount": following,
		},
	})
}
