package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/cybersafe/cybersafe/internal/api"
	"github.com/cybersafe/cybersafe/internal/config"
	"github.com/cybersafe/cybersafe/internal/database"
	"github.com/cybersafe/cybersafe/internal/games"
)

type ServerTestSuite struct {
	suite.Suite
	server *api.Server
	db     *database.Client
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.New(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		Database:      &config.DatabaseConfig{Path: "unused"},
		SessionKey:    "0123456789abcdef0123456789abcdef",
		SessionMaxAge: 3600,
	}
	server, err := api.New(cfg, db, false)
	s.Require().NoError(err)
	s.server = server
}

func (s *ServerTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// browser is a minimal test client that carries session cookies between
// requests, like a browser would.
type browser struct {
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (s *ServerTestSuite) newBrowser() *browser {
	return &browser{
		handler: s.server.Handler(),
		cookies: make(map[string]*http.Cookie),
	}
}

func (b *browser) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, "")
}

func (b *browser) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, strings.NewReader(body), "application/json")
}

func (b *browser) register(s *ServerTestSuite, username, password string) {
	w := b.postForm("/register", url.Values{"username": {username}, "password": {password}})
	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal("/login", w.Header().Get("Location"))
}

func (b *browser) login(s *ServerTestSuite, username, password string) {
	w := b.postForm("/login", url.Values{"username": {username}, "password": {password}})
	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal("/", w.Header().Get("Location"))
}

func (s *ServerTestSuite) TestPublicPages() {
	b := s.newBrowser()
	for _, path := range []string{"/", "/about", "/contactus", "/games"} {
		w := b.get(path)
		s.Equal(http.StatusOK, w.Code, path)
	}
}

func (s *ServerTestSuite) TestRegisterAndLogin() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.get("/game_scores")
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestRegister_StoresPasswordHashed() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")

	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	s.NotEqual("p1", user.PasswordHash)
	s.True(strings.HasPrefix(user.PasswordHash, "$2"))
}

func (s *ServerTestSuite) TestRegister_DuplicateUsername() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")

	w := b.postForm("/register", url.Values{"username": {"alice"}, "password": {"p2"}})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Username is already taken. Please choose another.")

	count, err := s.db.CountUsers(context.Background())
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

func (s *ServerTestSuite) TestLogin_WrongPassword() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")

	w := b.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Invalid username or password")

	// No session was established.
	w = b.get("/game_scores")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
}

func (s *ServerTestSuite) TestLogin_UnknownUser() {
	b := s.newBrowser()
	w := b.postForm("/login", url.Values{"username": {"ghost"}, "password": {"p1"}})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Invalid username or password")
}

func (s *ServerTestSuite) TestAuthGate_RedirectsWithoutSession() {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/password_strength_checker"},
		{http.MethodGet, "/cyber_security_quiz"},
		{http.MethodGet, "/security_threat_match"},
		{http.MethodGet, "/game_scores"},
		{http.MethodPost, "/save_score"},
		{http.MethodPost, "/delete_score/1"},
	}
	for _, p := range paths {
		b := s.newBrowser()
		w := b.do(p.method, p.path, nil, "")
		s.Equal(http.StatusFound, w.Code, p.path)
		s.Equal("/login", w.Header().Get("Location"), p.path)
	}

	// The gated save_score handler never ran.
	count, err := s.db.CountGameScores(context.Background())
	s.Require().NoError(err)
	s.EqualValues(0, count)
}

func (s *ServerTestSuite) TestSaveScoreAndList() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.postJSON("/save_score", `{"game_name":"quiz1","score":42}`)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Score saved successfully")

	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	scores, err := s.db.GetGameScoresByUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal("quiz1", scores[0].GameName)
	s.Equal(42, scores[0].Score)

	w = b.get("/game_scores")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "quiz1")
	s.Contains(w.Body.String(), "42")
}

func (s *ServerTestSuite) TestSaveScore_MalformedPayload() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.postJSON("/save_score", `{"score":"not a number"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "error")

	count, err := s.db.CountGameScores(context.Background())
	s.Require().NoError(err)
	s.EqualValues(0, count)
}

func (s *ServerTestSuite) TestDeleteScore() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	s.Equal(http.StatusOK, b.postJSON("/save_score", `{"game_name":"quiz1","score":1}`).Code)
	s.Equal(http.StatusOK, b.postJSON("/save_score", `{"game_name":"quiz1","score":2}`).Code)

	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	scores, err := s.db.GetGameScoresByUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)

	w := b.do(http.MethodPost, "/delete_score/"+itoa(scores[0].ID), nil, "")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/game_scores", w.Header().Get("Location"))

	remaining, err := s.db.GetGameScoresByUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(scores[1].ID, remaining[0].ID)
}

func (s *ServerTestSuite) TestDeleteScore_NonexistentID() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.do(http.MethodPost, "/delete_score/9999", nil, "")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/game_scores", w.Header().Get("Location"))

	w = b.get("/game_scores")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Score not found.")
}

func (s *ServerTestSuite) TestDeleteScore_OtherUsersScore() {
	alice := s.newBrowser()
	alice.register(s, "alice", "p1")
	alice.login(s, "alice", "p1")
	s.Equal(http.StatusOK, alice.postJSON("/save_score", `{"game_name":"quiz1","score":10}`).Code)

	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	scores, err := s.db.GetGameScoresByUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)

	bob := s.newBrowser()
	bob.register(s, "bob", "p2")
	bob.login(s, "bob", "p2")

	w := bob.do(http.MethodPost, "/delete_score/"+itoa(scores[0].ID), nil, "")
	s.Equal(http.StatusFound, w.Code)

	// Alice's score survived.
	remaining, err := s.db.GetGameScoresByUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Len(remaining, 1)
}

func (s *ServerTestSuite) TestSecurityThreatMatch_ContainsAllDescriptions() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.get("/security_threat_match")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	for _, threat := range games.Threats {
		s.Contains(body, threat)
	}
	for _, desc := range games.Descriptions() {
		s.Contains(body, desc)
	}
}

func (s *ServerTestSuite) TestCyberSecurityQuiz_ShowsInstructions() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	w := b.get("/cyber_security_quiz")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "24 questions")
}

func (s *ServerTestSuite) TestLogout() {
	b := s.newBrowser()
	b.register(s, "alice", "p1")
	b.login(s, "alice", "p1")

	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	s.True(user.IsAuthenticated)

	w := b.get("/logout")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))

	user, err = s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	s.False(user.IsAuthenticated)

	w = b.get("/game_scores")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
}

func (s *ServerTestSuite) TestLogout_WithoutSession() {
	b := s.newBrowser()
	w := b.get("/logout")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
