package models

// User is the session-scoped view of the authenticated user.
type User struct {
	ID       uint
	Username string
}

// SaveScoreRequest is the JSON payload for the save_score endpoint.
type SaveScoreRequest struct {
	GameName string `json:"game_name" binding:"required"`
	Score    int    `json:"score"`
}
