package mission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Protocol-Lattice/go-mission/src/concurrent"
	"github.com/Protocol-Lattice/go-mission/src/models"
)

// ErrUnknownMission is returned when a mission id has no live queue.
var ErrUnknownMission = errors.New("unknown mission")

// SpecialistConfig describes a specialist agent built fresh for every
// mission run.
type SpecialistConfig struct {
	Name         string
	Description  string
	SystemPrompt string
}

// AgentProfile customises the orchestrator selected by a mission's
// agent id.
type AgentProfile struct {
	Name         string
	SystemPrompt string
}

// ManagerOptions configure a new Manager.
type ManagerOptions struct {
	Model       models.Agent
	Tools       []Tool
	Specialists []SpecialistConfig

	// Agents maps a caller-supplied agent id to an orchestrator profile.
	// Unknown ids fall back to the default profile.
	Agents map[int]AgentProfile

	// MaxConcurrent caps the number of mission loops running at once.
	MaxConcurrent int
}

type missionEntry struct {
	mission *Mission
	queue   *eventQueue
	state   *SharedState
}

// Manager owns the set of active missions. It allocates ids and event
// queues, runs each agent loop detached through a bounded worker pool,
// and guarantees every mission's queue ends with the terminal sentinel.
type Manager struct {
	model       models.Agent
	tools       []Tool
	specialists []SpecialistConfig
	agents      map[int]AgentProfile
	pool        *concurrent.WorkerPool

	mu       sync.RWMutex
	missions map[string]*missionEntry

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager creates a Manager with the provided options.
func NewManager(opts ManagerOptions) (*Manager, error) {
	if opts.Model == nil {
		return nil, errors.New("manager requires a language model")
	}

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 32
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		model:       opts.Model,
		tools:       opts.Tools,
		specialists: opts.Specialists,
		agents:      opts.Agents,
		pool:        concurrent.NewWorkerPool(maxConcurrent),
		missions:    make(map[string]*missionEntry),
		baseCtx:     ctx,
		cancel:      cancel,
	}, nil
}

// Submit registers a new mission and starts its agent loop in the
// background. It returns immediately with the mission id.
func (m *Manager) Submit(query string, agentID int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("query is empty")
	}

	id := uuid.NewString()
	entry := &missionEntry{
		mission: newMission(id, query, agentID),
		queue:   newEventQueue(),
		state:   NewSharedState(),
	}

	m.mu.Lock()
	m.missions[id] = entry
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(entry, query)
	return id, nil
}

// run executes one mission. On every exit path it pushes a result or
// error update followed unconditionally by the terminal sentinel, so
// the stream consumer always observes a terminus.
func (m *Manager) run(entry *missionEntry, query string) {
	defer m.wg.Done()

	var final string
	defer func() { entry.queue.push(terminalUpdate(final)) }()

	err := m.pool.Do(m.baseCtx, func() error {
		result, err := m.execute(entry, query)
		if err != nil {
			return err
		}
		entry.mission.setStatus(MissionCompleted)
		entry.queue.push(resultUpdate(result))
		final = result
		return nil
	})
	if err != nil {
		log.Printf("mission %s failed: %v", entry.mission.ID, err)
		entry.mission.setStatus(MissionFailed)
		entry.queue.push(errorUpdate(err))
	}
}

// execute builds the per-mission agent team and runs the orchestrator.
// Specialists share the mission's state and event queue but never its
// delegation tool.
func (m *Manager) execute(entry *missionEntry, query string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()

	id := entry.mission.ID
	emit := entry.queue.push

	specRegistry := NewStaticRegistry(m.tools...)
	specialists := make([]Specialist, 0, len(m.specialists))
	for _, cfg := range m.specialists {
		sa, saErr := NewAgent(AgentOptions{
			Name:         cfg.Name,
			Description:  cfg.Description,
			Role:         RoleSpecialist,
			SystemPrompt: cfg.SystemPrompt,
			Model:        m.model,
			Registry:     specRegistry,
			State:        entry.state,
			MissionID:    id,
			Emit:         emit,
		})
		if saErr != nil {
			return "", saErr
		}
		specialists = append(specialists, sa)
	}

	orchRegistry := NewStaticRegistry(m.tools...)
	if len(specialists) > 0 {
		orchRegistry.Register(NewDelegateTool(specialists...))
	}

	profile := m.agents[entry.mission.AgentID]
	orchestrator, err := NewAgent(AgentOptions{
		Name:         profile.Name,
		Role:         RoleOrchestrator,
		SystemPrompt: profile.SystemPrompt,
		Model:        m.model,
		Registry:     orchRegistry,
		State:        entry.state,
		MissionID:    id,
		Emit:         emit,
	})
	if err != nil {
		return "", err
	}

	return orchestrator.Run(m.baseCtx, query)
}

// Stream returns a channel delivering the mission's updates in FIFO
// order. The channel closes after the terminal sentinel, at which point
// the mission's queue mapping is removed. Cancelling ctx stops
// forwarding but does not stop the background run.
func (m *Manager) Stream(ctx context.Context, missionID string) (<-chan Update, error) {
	m.mu.RLock()
	entry, ok := m.missions[missionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownMission
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		defer m.remove(missionID)
		for {
			u, err := entry.queue.pop(ctx)
			if err != nil {
				return
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
			if u.Terminal() {
				return
			}
		}
	}()
	return out, nil
}

// Mission returns the mission record for id, if still tracked.
func (m *Manager) Mission(id string) (*Mission, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.missions[id]
	if !ok {
		return nil, false
	}
	return entry.mission, true
}

// ActiveIDs returns the ids of all tracked missions in sorted order.
func (m *Manager) ActiveIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.missions))
	for id := range m.missions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.missions, id)
	m.mu.Unlock()
}

// Close cancels outstanding mission runs and waits for them to push
// their terminal events.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
