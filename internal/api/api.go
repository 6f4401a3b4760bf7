// Package api wires the gin server: sessions, middleware and routes.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/cybersafe/cybersafe/internal/api/auth"
	"github.com/cybersafe/cybersafe/internal/api/handler"
	"github.com/cybersafe/cybersafe/internal/config"
	"github.com/cybersafe/cybersafe/internal/database"
	"github.com/cybersafe/cybersafe/internal/static"
	"github.com/cybersafe/cybersafe/internal/web"
)

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	db           database.DB
	authProvider *auth.Provider
}

func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:          cfg,
		ginEngine:    gin.Default(),
		db:           db,
		authProvider: auth.New(db),
	}
	s.ginEngine.SetHTMLTemplate(web.Templates())
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("cybersafe_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	h := handler.New(s.db)

	s.ginEngine.StaticFS("/static", http.FS(static.Assets()))

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/about", h.About)
	s.ginEngine.GET("/contactus", h.ContactUs)
	s.ginEngine.GET("/games", h.Games)

	s.ginEngine.GET("/login", s.authProvider.LoginForm)
	s.ginEngine.POST("/login", s.authProvider.Login)
	s.ginEngine.GET("/register", s.authProvider.RegisterForm)
	s.ginEngine.POST("/register", s.authProvider.Register)
	s.ginEngine.GET("/logout", s.authProvider.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.GET("/password_strength_checker", h.PasswordStrengthChecker)
	protected.GET("/cyber_security_quiz", h.CyberSecurityQuiz)
	protected.GET("/security_threat_match", h.SecurityThreatMatch)

	protected.POST("/save_score", h.SaveScore)
	protected.GET("/game_scores", h.GameScores)
	protected.POST("/delete_score/:id", h.DeleteScore)
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
