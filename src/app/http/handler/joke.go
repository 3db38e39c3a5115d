package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"jokebox/src/app/http/dto"
	"jokebox/src/app/http/response"
	"jokebox/src/app/middleware"
	"jokebox/src/core/domain"
	"jokebox/src/core/usecase"
)

// JokeHandler handles the joke collection endpoints.
type JokeHandler struct {
	jokeService *usecase.JokeService
}

func NewJokeHandler(jokeService *usecase.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

// jokeJSON serializes a joke record. Nullable fields come out as null.
func jokeJSON(j *domain.Joke) gin.H {
	return gin.H{
		"id":             j.ID,
		"external_id":    j.ExternalID,
		"value":          j.Value,
		"category":       j.Category,
		"created_at":     j.CreatedAt,
		"owner_username": j.OwnerUsername,
	}
}

func parseJokeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid joke id", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// List returns all jokes owned by the caller.
// GET /jokes
func (h *JokeHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	jokes, err := h.jokeService.List(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	items := make([]gin.H, 0, len(jokes))
	for i := range jokes {
		items = append(items, jokeJSON(&jokes[i]))
	}
	response.OK(c, gin.H{"jokes": items})
}

// Get returns a single joke owned by the caller.
// GET /jokes/:id
func (h *JokeHandler) Get(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	joke, err := h.jokeService.Get(c.Request.Context(), user, id)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, jokeJSON(joke))
}

// Create stores a new user-authored joke.
// POST /jokes
func (h *JokeHandler) Create(c *gin.Context) {
	var req dto.JokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing field(s): value", middleware.GetRequestID(c))
		return
	}
	user := middleware.CurrentUser(c)

	joke, err := h.jokeService.Create(c.Request.Context(), user, req.Value)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, jokeJSON(joke))
}

// Update replaces the joke text.
// PUT /jokes/:id
func (h *JokeHandler) Update(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	var req dto.JokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing field(s): value", middleware.GetRequestID(c))
		return
	}
	user := middleware.CurrentUser(c)

	joke, err := h.jokeService.Update(c.Request.Context(), user, id, req.Value)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, jokeJSON(joke))
}

// Delete removes the joke.
// DELETE /jokes/:id
func (h *JokeHandler) Delete(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	if err := h.jokeService.Delete(c.Request.Context(), user, id); err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"message": "deleted"})
}
