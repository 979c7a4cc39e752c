package state

import (
	"sync"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/services"
)

// User states constants
const (
	None             = "none"
	WaitingForWeight = "waiting_for_weight"
	WaitingForHeight = "waiting_for_height"
	ChattingWithAI   = "chatting_with_ai"
)

const (
	// TTL bounds how long an idle user's state is kept.
	TTL = 24 * time.Hour
	// MaxChatTurns caps the chat history sent back to the model.
	MaxChatTurns = 20
)

// StateManager keeps per-user conversation state between updates.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)

	SetTempData(userID int64, key, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)

	// AppendChatTurns adds turns to the user's AI chat, keeping the newest
	// MaxChatTurns.
	AppendChatTurns(userID int64, turns ...services.Turn)
	ChatHistory(userID int64) []services.Turn
	ClearChatHistory(userID int64)
}

var (
	_ StateManager = (*Manager)(nil)
	_ StateManager = (*RedisManager)(nil)
)

// Manager manages user states in memory. It is used when Redis is not
// configured; state is lost on restart.
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	chats      map[int64][]services.Turn
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
		chats:      make(map[int64][]services.Turn),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[userID][key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}

func (m *Manager) AppendChatTurns(userID int64, turns ...services.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := append(m.chats[userID], turns...)
	if len(history) > MaxChatTurns {
		history = append([]services.Turn(nil), history[len(history)-MaxChatTurns:]...)
	}
	m.chats[userID] = history
}

// ChatHistory returns a copy of the user's chat turns, oldest first.
func (m *Manager) ChatHistory(userID int64) []services.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]services.Turn(nil), m.chats[userID]...)
}

func (m *Manager) ClearChatHistory(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chats, userID)
}
