package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/cybersafe/cybersafe/internal/database"
)

// RegisterForm renders the registration form.
func (p *Provider) RegisterForm(c *gin.Context) {
	RenderPage(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register creates a new user from the submitted form. The duplicate check
// relies on the store's unique index, so concurrent registrations with the
// same username cannot both succeed.
func (p *Provider) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		RenderPage(c, http.StatusOK, "register.html", gin.H{
			"Title": "Register",
			"Error": "Username and password are required.",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		RenderPage(c, http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Register",
			"Error": "Registration failed. Please try again.",
		})
		return
	}

	if _, err := p.db.CreateUser(c.Request.Context(), username, string(hash)); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			RenderPage(c, http.StatusOK, "register.html", gin.H{
				"Title": "Register",
				"Error": "Username is already taken. Please choose another.",
			})
			return
		}
		log.Error("failed to register user", "error", err)
		RenderPage(c, http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Register",
			"Error": "Registration failed. Please try again.",
		})
		return
	}

	FlashSuccess(c, "Registration successful. You can now login.")
	c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login form.
func (p *Provider) LoginForm(c *gin.Context) {
	RenderPage(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login authenticates the submitted credentials and binds the session to the
// user. The username lookup is case-sensitive and the password is compared
// against the stored bcrypt hash.
func (p *Provider) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := p.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err != nil && !errors.Is(err, database.ErrUserNotFound) {
			log.Error("failed to look up user for login", "error", err)
		}
		RenderPage(c, http.StatusOK, "login.html", gin.H{
			"Title": "Login",
			"Error": "Invalid username or password",
		})
		return
	}

	if err := p.db.SetUserAuthenticated(c.Request.Context(), user.ID, true); err != nil {
		log.Error("failed to mark user as authenticated", "error", err, "user", user.Username)
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	session.AddFlash("Login successful", flashSuccessKey)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		RenderPage(c, http.StatusInternalServerError, "login.html", gin.H{
			"Title": "Login",
			"Error": "Login failed. Please try again.",
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session binding. It always redirects home with a notice,
// whether or not a user was logged in.
func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserIDKey).(uint); ok {
		if err := p.db.SetUserAuthenticated(c.Request.Context(), id, false); err != nil {
			log.Error("failed to clear user authentication flag", "error", err, "user_id", id)
		}
	}
	session.Clear()
	session.AddFlash("Logout successful", flashSuccessKey)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
