package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/reelcult/cultfilm-backend/model"
)

func seedReview(t *testing.T, db *gorm.DB, authorId string, movieId string) *model.Review {
	review := &model.Review{
		Id:      uuid.New().String(),
		UserID:  authorId,
		MovieID: movieId,
		Rating:  8,
		Content: "still thinking about the ending",
	}
	assert.Nil(t, db.Create(review).Error)
	return review
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	router, db, sessions := newTestServer(t)
	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	movie := createTestMovie(t, db, "Eraserhead", "David Lynch", 1977)
	review := seedReview(t, db, author.Id, movie.Id)
	token := loginAs(t, sessions, viewer.Id)

	// Like: counter goes to 1 and status reflects it.
	code, body := doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "like"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["likesCount"])

	code, body = doRequest(t, router, http.MethodGet, "/api/reviews/like?reviewId="+review.Id, token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likesCount"])

	// Unlike returns the counter to its pre-like value exactly.
	code, body = doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "unlike"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["likesCount"])

	code, body = doRequest(t, router, http.MethodGet, "/api/reviews/like?reviewId="+review.Id, token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likesCount"])
}

func TestDoubleLikeIsConflictAndLeavesCounterUnchanged(t *testing.T) {
	router, db, sessions := newTestServer(t)
	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	movie := createTestMovie(t, db, "El Topo", "Alejandro Jodorowsky", 1970)
	review := seedReview(t, db, author.Id, movie.Id)
	token := loginAs(t, sessions, viewer.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "like"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "like"})
	assert.Equal(t, http.StatusConflict, code)

	// The failed transaction rolled back: counter still matches edge count.
	var updated model.Review
	assert.Nil(t, db.Where("id = ?", review.Id).First(&updated).Error)
	assert.Equal(t, 1, updated.LikesCount)
	var edges int64
	assert.Nil(t, db.Model(&model.ReviewLike{}).Where("review_id = ?", review.Id).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)
}

func TestSelfLikeIsRejected(t *testing.T) {
	router, db, sessions := newTestServer(t)
	author := createTestUser(t, db, "author")
	movie := createTestMovie(t, db, "Tetsuo", "Shinya Tsukamoto", 1989)
	review := seedReview(t, db, author.Id, movie.Id)
	token := loginAs(t, sessions, author.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "like"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUnlikeWithoutLikeIs404(t *testing.T) {
	router, db, sessions := newTestServer(t)
	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	movie := createTestMovie(t, db, "Suspiria", "Dario Argento", 1977)
	review := seedReview(t, db, author.Id, movie.Id)
	token := loginAs(t, sessions, viewer.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": review.Id, "action": "unlike"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLikeUnknownActionIs400(t *testing.T) {
	router, db, sessions := newTestServer(t)
	viewer := createTestUser(t, db, "viewer")
	token := loginAs(t, sessions, viewer.Id)

	code, _ := doRequest(t, router, http.MethodPost, "/api/reviews/like", token,
		map[string]string{"reviewId": "whatever", "action": "toggle"})
	assert.Equal(t, http.StatusBadRequest, code)
}
