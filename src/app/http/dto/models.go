package dto

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JokeRequest is the payload for POST /jokes and PUT /jokes/:id.
type JokeRequest struct {
	Value string `json:"value" binding:"required"`
}
