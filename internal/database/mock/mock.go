package mock

import (
	"context"
	"sync"

	"github.com/cybersafe/cybersafe/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	// User storage
	users      map[uint]*database.User
	nextUserID uint

	// Score storage
	scores      map[uint]*database.GameScore
	nextScoreID uint

	// Error simulation
	CreateUserError           error
	GetUserByIDError          error
	GetUserByUsernameError    error
	SetUserAuthenticatedError error
	CreateGameScoreError      error
	GetGameScoresByUserError  error
	DeleteGameScoreError      error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:       make(map[uint]*database.User),
		nextUserID:  1,
		scores:      make(map[uint]*database.GameScore),
		nextScoreID: 1,
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.scores = make(map[uint]*database.GameScore)
	m.nextScoreID = 1

	m.CreateUserError = nil
	m.GetUserByIDError = nil
	m.GetUserByUsernameError = nil
	m.SetUserAuthenticatedError = nil
	m.CreateGameScoreError = nil
	m.GetGameScoresByUserError = nil
	m.DeleteGameScoreError = nil
}

func (m *MockDB) CreateUser(_ context.Context, username, passwordHash string) (*database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}
	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrUsernameTaken
		}
	}
	user := &database.User{
		Username:        username,
		PasswordHash:    passwordHash,
		IsAuthenticated: true,
	}
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user
	return user, nil
}

func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}
	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	return user, nil
}

func (m *MockDB) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (m *MockDB) SetUserAuthenticated(_ context.Context, id uint, authenticated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetUserAuthenticatedError != nil {
		return m.SetUserAuthenticatedError
	}
	user, ok := m.users[id]
	if !ok {
		return database.ErrUserNotFound
	}
	user.IsAuthenticated = authenticated
	return nil
}

func (m *MockDB) CreateGameScore(_ context.Context, userID uint, gameName string, score int) (*database.GameScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateGameScoreError != nil {
		return nil, m.CreateGameScoreError
	}
	gameScore := &database.GameScore{
		UserID:   userID,
		GameName: gameName,
		Score:    score,
	}
	gameScore.ID = m.nextScoreID
	m.nextScoreID++
	m.scores[gameScore.ID] = gameScore
	return gameScore, nil
}

func (m *MockDB) GetGameScoresByUser(_ context.Context, userID uint) ([]database.GameScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetGameScoresByUserError != nil {
		return nil, m.GetGameScoresByUserError
	}
	var scores []database.GameScore
	for _, s := range m.scores {
		if s.UserID == userID {
			scores = append(scores, *s)
		}
	}
	return scores, nil
}

func (m *MockDB) DeleteGameScore(_ context.Context, id, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteGameScoreError != nil {
		return m.DeleteGameScoreError
	}
	score, ok := m.scores[id]
	if !ok || score.UserID != userID {
		return database.ErrScoreNotFound
	}
	delete(m.scores, id)
	return nil
}

func (m *MockDB) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MockDB) CountGameScores(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.scores)), nil
}

func (m *MockDB) Close() error {
	return nil
}
