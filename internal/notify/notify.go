package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level — тип уведомления
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice — уведомление для пользователя (переходы статусов оплаты и т.п.)
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Level     `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sink принимает уведомления, адресованные сессии
type Sink interface {
	Notify(sessionID, message string, level Level)
}

// максимум уведомлений на сессию; старые вытесняются
const maxPerSession = 20

// Memory — Sink с буфером в памяти, клиент забирает уведомления через API
type Memory struct {
	mu      sync.Mutex
	notices map[string][]Notice
}

func NewMemory() *Memory {
	return &Memory{notices: make(map[string][]Notice)}
}

func (m *Memory) Notify(sessionID, message string, level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append(m.notices[sessionID], Notice{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      level,
		CreatedAt: time.Now(),
	})
	if len(list) > maxPerSession {
		list = list[len(list)-maxPerSession:]
	}
	m.notices[sessionID] = list
}

// Drain возвращает накопленные уведомления сессии и очищает буфер
func (m *Memory) Drain(sessionID string) []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.notices[sessionID]
	delete(m.notices, sessionID)
	return out
}
