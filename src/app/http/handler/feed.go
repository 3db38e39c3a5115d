package handler

import (
	"github.com/gin-gonic/gin"

	"jokebox/src/app/http/response"
	"jokebox/src/app/middleware"
	"jokebox/src/core/usecase"
)

// FeedHandler handles the external joke feed endpoints.
type FeedHandler struct {
	feedService *usecase.FeedService
}

func NewFeedHandler(feedService *usecase.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Categories returns the upstream category list.
// GET /categories
func (h *FeedHandler) Categories(c *gin.Context) {
	categories, err := h.feedService.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"categories": categories})
}

// Random fetches a random joke from the feed and stores it for the caller.
// 201 when the joke is new for this user, 200 when it was already in the
// collection (same external id, no duplicate row).
// GET /random?category=
func (h *FeedHandler) Random(c *gin.Context) {
	user := middleware.CurrentUser(c)
	category := c.Query("category")

	joke, created, err := h.feedService.Random(c.Request.Context(), user, category)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	if created {
		response.Created(c, jokeJSON(joke))
		return
	}
	response.OK(c, jokeJSON(joke))
}
