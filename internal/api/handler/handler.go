// Package handler contains the page and score handlers.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cybersafe/cybersafe/internal/api/auth"
	"github.com/cybersafe/cybersafe/internal/database"
	"github.com/cybersafe/cybersafe/internal/games"
)

const quizInstructions = `Welcome to the Cybersecurity Awareness Quiz!
Instructions:

        1. This quiz contains a total of 24 questions.
        2. Choose the correct option for each question.
        3. Click the 'Submit Answer' button
        4. Good luck and stay cyber-aware!
        5. At the end to see your score.`

type Handler struct {
	db database.DB
}

func New(db database.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Home(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "home.html", nil)
}

func (h *Handler) About(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (h *Handler) ContactUs(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "contactus.html", gin.H{"Title": "Contact Us"})
}

func (h *Handler) Games(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "games.html", gin.H{"Title": "Games"})
}

func (h *Handler) PasswordStrengthChecker(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "password_strength_checker.html", gin.H{
		"Title": "Password Strength Checker",
	})
}

func (h *Handler) CyberSecurityQuiz(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "cyber_security_quiz.html", gin.H{
		"Title":            "Cyber Security Quiz",
		"QuizInstructions": quizInstructions,
	})
}

// SecurityThreatMatch renders the threat labels alongside a freshly shuffled
// copy of their descriptions.
func (h *Handler) SecurityThreatMatch(c *gin.Context) {
	auth.RenderPage(c, http.StatusOK, "security_threat_match.html", gin.H{
		"Title":        "Security Threat Match",
		"Threats":      games.Threats,
		"Descriptions": games.ShuffledDescriptions(),
	})
}
