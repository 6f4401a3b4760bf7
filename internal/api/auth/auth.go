// Package auth implements the session-backed authentication flows:
// registration, login, logout and the middleware guarding protected routes.
package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/cybersafe/cybersafe/internal/api/models"
	"github.com/cybersafe/cybersafe/internal/database"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"

	flashSuccessKey = "success"
	flashErrorKey   = "error"
)

// Provider handles authentication against the user store.
type Provider struct {
	db database.DB
}

func New(db database.DB) *Provider {
	return &Provider{db: db}
}

// Notices holds the one-time flash messages drained from the session.
type Notices struct {
	Success []any
	Error   []any
}

// Flashes drains and returns the pending flash notices. Draining mutates the
// session, so the session is saved here.
func Flashes(c *gin.Context) Notices {
	session := sessions.Default(c)
	n := Notices{
		Success: session.Flashes(flashSuccessKey),
		Error:   session.Flashes(flashErrorKey),
	}
	if len(n.Success) > 0 || len(n.Error) > 0 {
		_ = session.Save()
	}
	return n
}

// Flash attaches a one-time notice to the session for the next rendered page.
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	_ = session.Save()
}

// FlashSuccess attaches a success notice to the session.
func FlashSuccess(c *gin.Context, message string) {
	Flash(c, flashSuccessKey, message)
}

// FlashError attaches an error notice to the session.
func FlashError(c *gin.Context, message string) {
	Flash(c, flashErrorKey, message)
}

// CurrentUser returns the user bound to the request, or nil for anonymous
// requests. On protected routes the middleware has already placed the user in
// the gin context; on public routes the session is consulted directly so
// pages can reflect the login state.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	session := sessions.Default(c)
	id, ok := session.Get(sessionUserIDKey).(uint)
	if !ok {
		return nil
	}
	username, _ := session.Get(sessionUsernameKey).(string)
	return &models.User{ID: id, Username: username}
}

// RenderPage renders an HTML template with the user and flash notices merged
// into the template data.
func RenderPage(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = CurrentUser(c)
	}
	data["Flashes"] = Flashes(c)
	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}
	c.HTML(status, name, data)
}

// RequireAuth guards protected routes. Requests without a valid session are
// redirected to the login page with a notice and the wrapped handler never
// runs. The session user is verified against the store so stale cookies from
// a reset database do not pass the gate.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(sessionUserIDKey).(uint)
		if !ok {
			session.AddFlash("Please log in first.", flashErrorKey)
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := p.db.GetUserByID(c.Request.Context(), id)
		if err != nil {
			session.Clear()
			session.AddFlash("Please log in first.", flashErrorKey)
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user", &models.User{ID: user.ID, Username: user.Username})
		c.Next()
	}
}
