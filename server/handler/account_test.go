package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelcult/cultfilm-backend/model"
)

func TestSignupAndLogin(t *testing.T) {
	router, db, _ := newTestServer(t)

	code, body := doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "ed_wood", "email": "ed@example.com", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ed_wood", body["user"].(map[string]interface{})["username"])

	// The password is stored hashed, never verbatim.
	var user model.User
	assert.Nil(t, db.Where("username = ?", "ed_wood").First(&user).Error)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "plan9fromspace", user.PasswordHash)

	code, body = doRequest(t, router, http.MethodPost, "/api/login", "",
		map[string]string{"username": "ed_wood", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusOK, code)
	token := body["token"].(string)
	assert.NotEmpty(t, token)

	code, body = doRequest(t, router, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ed@example.com", body["user"].(map[string]interface{})["email"])

	// Logout revokes the token.
	code, _ = doRequest(t, router, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doRequest(t, router, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSignupValidation(t *testing.T) {
	router, _, _ := newTestServer(t)

	code, _ := doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "", "email": "a@b.com", "password": "longenough"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "x", "email": "not-an-email", "password": "longenough"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "x", "email": "a@b.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSignupDuplicateIsConflict(t *testing.T) {
	router, _, _ := newTestServer(t)

	code, _ := doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "ed_wood", "email": "ed@example.com", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "ed_wood", "email": "other@example.com", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "other", "email": "ed@example.com", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _, _ := newTestServer(t)

	code, _ := doRequest(t, router, http.MethodPost, "/api/signup", "",
		map[string]string{"username": "ed_wood", "email": "ed@example.com", "password": "plan9fromspace"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/login", "",
		map[string]string{"username": "ed_wood", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/login", "",
		map[string]string{"username": "nobody", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestUpdateProfileAndVerify(t *testing.T) {
	router, db, sessions := newTestServer(t)
	user := createTestUser(t, db, "ed_wood")
	token := loginAs(t, sessions, user.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/me", token,
		map[string]string{"biography": "I make movies for the misunderstood"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/me/verify", token, nil)
	assert.Equal(t, http.StatusOK, code)

	var stored model.User
	assert.Nil(t, db.Where("id = ?", user.Id).First(&stored).Error)
	assert.Equal(t, "I make movies for the misunderstood", stored.Biography)
	assert.True(t, stored.Verified)

	// Empty update body has nothing to apply.
	code, _ = doRequest(t, router, http.MethodPost, "/api/me", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetUserProfileWithCounts(t *testing.T) {
	router, db, sessions := newTestServer(t)
	userA := createTestUser(t, db, "user_a")
	userB := createTestUser(t, db, "user_b")
	tokenB := loginAs(t, sessions, userB.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/users/"+userA.Id+"/follow", tokenB, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body := doRequest(t, router, http.MethodGet, "/api/users/"+userA.Id, "", nil)
	assert.Equal(t, http.StatusOK, code)
	profile := body["user"].(map[string]interface{})
	assert.Equal(t, float64(1), profile["followersCount"])
	assert.Equal(t, float64(0), profile["followingCount"])
	// The public profile never exposes the email.
	_, hasEmail := profile["email"]
	assert.False(t, hasEmail)

	code, _ = doRequest(t, router, http.MethodGet, "/api/users/no_such_user", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
