package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelcult/cultfilm-backend/model"
)

func TestListLifecycle(t *testing.T) {
	router, db, sessions := newTestServer(t)
	owner := createTestUser(t, db, "owner")
	movie := createTestMovie(t, db, "Repo Man", "Alex Cox", 1984)
	token := loginAs(t, sessions, owner.Id)

	code, body := doRequest(t, router, http.MethodPost, "/api/lists", token,
		map[string]interface{}{"name": "midnight movies", "isPublic": true})
	assert.Equal(t, http.StatusOK, code)
	listId := body["list"].(map[string]interface{})["Id"].(string)

	code, _ = doRequest(t, router, http.MethodPost, "/api/lists/"+listId+"/items", token,
		map[string]string{"movieId": movie.Id})
	assert.Equal(t, http.StatusOK, code)

	// Duplicate entry is a conflict.
	code, _ = doRequest(t, router, http.MethodPost, "/api/lists/"+listId+"/items", token,
		map[string]string{"movieId": movie.Id})
	assert.Equal(t, http.StatusConflict, code)

	code, body = doRequest(t, router, http.MethodGet, "/api/lists/"+listId, "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["list"].(map[string]interface{})["movies"].([]interface{}), 1)

	code, _ = doRequest(t, router, http.MethodDelete, "/api/lists/"+listId+"/items/"+movie.Id, token, nil)
	assert.Equal(t, http.StatusOK, code)

	// Removing again: nothing there.
	code, _ = doRequest(t, router, http.MethodDelete, "/api/lists/"+listId+"/items/"+movie.Id, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPrivateListVisibility(t *testing.T) {
	router, db, sessions := newTestServer(t)
	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")
	ownerToken := loginAs(t, sessions, owner.Id)
	strangerToken := loginAs(t, sessions, stranger.Id)

	code, body := doRequest(t, router, http.MethodPost, "/api/lists", ownerToken,
		map[string]interface{}{"name": "guilty pleasures", "isPublic": false})
	assert.Equal(t, http.StatusOK, code)
	listId := body["list"].(map[string]interface{})["Id"].(string)

	code, _ = doRequest(t, router, http.MethodGet, "/api/lists/"+listId, ownerToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, router, http.MethodGet, "/api/lists/"+listId, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doRequest(t, router, http.MethodGet, "/api/lists/"+listId, "", nil)
	assert.Equal(t, http.StatusForbidden, code)

	// The private list is hidden from the stranger's view of owner's lists
	// but visible to the owner.
	code, body = doRequest(t, router, http.MethodGet, "/api/users/"+owner.Id+"/lists", strangerToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["lists"].([]interface{}), 0)

	code, body = doRequest(t, router, http.MethodGet, "/api/users/"+owner.Id+"/lists", ownerToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["lists"].([]interface{}), 1)
}

func TestListOwnershipEnforcement(t *testing.T) {
	router, db, sessions := newTestServer(t)
	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")
	movie := createTestMovie(t, db, "Liquid Sky", "Slava Tsukerman", 1982)
	ownerToken := loginAs(t, sessions, owner.Id)
	strangerToken := loginAs(t, sessions, stranger.Id)

	code, body := doRequest(t, router, http.MethodPost, "/api/lists", ownerToken,
		map[string]interface{}{"name": "public stuff", "isPublic": true})
	assert.Equal(t, http.StatusOK, code)
	listId := body["list"].(map[string]interface{})["Id"].(string)

	code, _ = doRequest(t, router, http.MethodPost, "/api/lists/"+listId+"/items", strangerToken,
		map[string]string{"movieId": movie.Id})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doRequest(t, router, http.MethodDelete, "/api/lists/"+listId, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doRequest(t, router, http.MethodDelete, "/api/lists/"+listId, ownerToken, nil)
	assert.Equal(t, http.StatusOK, code)

	var lists, items int64
	assert.Nil(t, db.Model(&model.MovieList{}).Count(&lists).Error)
	assert.Nil(t, db.Model(&model.MovieListItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), lists)
	assert.Equal(t, int64(0), items)
}
