package mission

import (
	"sync"
	"time"
)

// Status is the lifecycle state of a mission.
type Status string

const (
	MissionRunning   Status = "running"
	MissionCompleted Status = "completed"
	MissionFailed    Status = "failed"
)

// Mission is one end-to-end request from submission to terminal event.
type Mission struct {
	ID        string
	Query     string
	AgentID   int
	CreatedAt time.Time

	mu     sync.RWMutex
	status Status
}

func newMission(id, query string, agentID int) *Mission {
	return &Mission{
		ID:        id,
		Query:     query,
		AgentID:   agentID,
		CreatedAt: time.Now().UTC(),
		status:    MissionRunning,
	}
}

// Status returns the mission's current lifecycle state.
func (m *Mission) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Mission) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}
