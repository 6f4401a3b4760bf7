package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cybersafe/cybersafe/internal/api/auth"
	"github.com/cybersafe/cybersafe/internal/api/models"
	"github.com/cybersafe/cybersafe/internal/database"
)

// SaveScore persists a submitted game score for the session user. The insert
// is a single record, so a failure leaves no partial state.
func (h *Handler) SaveScore(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req models.SaveScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score payload: " + err.Error()})
		return
	}

	if _, err := h.db.CreateGameScore(c.Request.Context(), user.ID, req.GameName, req.Score); err != nil {
		log.Error("failed to save game score", "error", err, "user", user.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save score"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Score saved successfully"})
}

// GameScores lists the session user's scores.
func (h *Handler) GameScores(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	scores, err := h.db.GetGameScoresByUser(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to list game scores", "error", err, "user", user.Username)
		scores = nil
	}

	auth.RenderPage(c, http.StatusOK, "game_scores.html", gin.H{
		"Title":  "My Game Scores",
		"Scores": scores,
	})
}

// DeleteScore deletes one of the session user's scores. The delete is scoped
// to the owning user, so a missing id and a foreign id are indistinguishable.
func (h *Handler) DeleteScore(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		auth.FlashError(c, "Score not found.")
		c.Redirect(http.StatusFound, "/game_scores")
		return
	}

	if err := h.db.DeleteGameScore(c.Request.Context(), uint(id), user.ID); err != nil {
		if errors.Is(err, database.ErrScoreNotFound) {
			auth.FlashError(c, "Score not found.")
		} else {
			log.Error("failed to delete game score", "error", err, "user", user.Username)
			auth.FlashError(c, "Failed to delete score.")
		}
		c.Redirect(http.StatusFound, "/game_scores")
		return
	}

	auth.FlashSuccess(c, "Score deleted.")
	c.Redirect(http.StatusFound, "/game_scores")
}
