package mission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Protocol-Lattice/go-mission/src/models"
)

// Role selects the agent's configuration. Orchestrators coordinate and
// may delegate; specialists execute directly. Both run the same loop.
type Role string

const (
	RoleOrchestrator Role = "orchestrator"
	RoleSpecialist   Role = "specialist"
)

// Iteration bounds per role. They guarantee termination even when the
// model keeps talking without ever calling the finish tool.
const (
	OrchestratorMaxIterations = 15
	SpecialistMaxIterations   = 10
)

// MaxIterationsMessage is returned when the bound is hit without a
// finish call. It is a non-error terminal condition.
const MaxIterationsMessage = "Maximum iterations reached"

const defaultOrchestratorPrompt = "You are the orchestrator of an AI agent team. Break the mission into steps, call tools when they help, delegate to specialists for focused work, and call the finish tool with your final answer."

const defaultSpecialistPrompt = "You are a specialist agent. Solve the task you were given directly, calling tools when they help, and call the finish tool with your result."

// Agent drives a bounded think/act loop against a language-model
// transport. One Agent value serves one run.
type Agent struct {
	name         string
	description  string
	role         Role
	systemPrompt string

	model    models.Agent
	registry Registry
	state    *SharedState

	missionID     string
	maxIterations int
	emit          func(Update)
}

// AgentOptions configure a new Agent.
type AgentOptions struct {
	Name         string
	Description  string
	Role         Role
	SystemPrompt string

	Model    models.Agent
	Registry Registry
	State    *SharedState

	MissionID     string
	MaxIterations int
	Emit          func(Update)
}

// NewAgent creates an Agent with the provided options.
func NewAgent(opts AgentOptions) (*Agent, error) {
	if opts.Model == nil {
		return nil, errors.New("agent requires a language model")
	}

	role := opts.Role
	if role == "" {
		role = RoleSpecialist
	}

	bound := opts.MaxIterations
	if bound <= 0 {
		bound = SpecialistMaxIterations
		if role == RoleOrchestrator {
			bound = OrchestratorMaxIterations
		}
	}

	systemPrompt := strings.TrimSpace(opts.SystemPrompt)
	if systemPrompt == "" {
		systemPrompt = defaultSpecialistPrompt
		if role == RoleOrchestrator {
			systemPrompt = defaultOrchestratorPrompt
		}
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = string(role)
	}

	registry := opts.Registry
	if registry == nil {
		registry = NewStaticRegistry()
	}

	emit := opts.Emit
	if emit == nil {
		emit = func(Update) {}
	}

	return &Agent{
		name:          name,
		description:   strings.TrimSpace(opts.Description),
		role:          role,
		systemPrompt:  systemPrompt,
		model:         opts.Model,
		registry:      registry,
		state:         opts.State,
		missionID:     opts.MissionID,
		maxIterations: bound,
		emit:          emit,
	}, nil
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Description returns the agent's description.
func (a *Agent) Description() string { return a.description }

// Run executes the think/act loop for one task. Tool-level failures are
// recovered locally; only transport or loop-level failures are returned
// as errors.
func (a *Agent) Run(ctx context.Context, task string) (string, error) {
	if strings.TrimSpace(task) == "" {
		return "", errors.New("task is empty")
	}

	transcript := []Message{
		{Role: RoleSystem, Content: a.seedPrompt()},
		{Role: RoleUser, Content: task},
	}
	a.emit(startedUpdate(a.missionID, a.name))

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		completion, err := a.model.Generate(ctx, renderTranscript(transcript))
		if err != nil {
			return "", fmt.Errorf("model generate: %w", err)
		}
		response := fmt.Sprint(completion)
		a.emit(thinkingUpdate(a.name, iteration, response))

		call, ok := ExtractToolCall(response)
		if !ok {
			transcript = append(transcript, Message{Role: RoleAssistant, Content: response})
			continue
		}

		tool, spec, found := a.registry.Lookup(call.Name)
		if !found {
			transcript = append(transcript, Message{
				Role:    RoleAssistant,
				Content: fmt.Sprintf("Tool %q is not available. Available tools: %s.", call.Name, strings.Join(a.toolNames(), ", ")),
			})
			continue
		}

		result, err := tool.Invoke(ctx, ToolRequest{
			MissionID: a.missionID,
			Arguments: call.Arguments,
			State:     a.state,
		})
		if err != nil {
			log.Printf("mission %s: tool %s failed: %v", a.missionID, spec.Name, err)
			transcript = append(transcript,
				Message{Role: RoleAssistant, Content: response},
				Message{Role: RoleUser, Content: fmt.Sprintf("Tool %s failed: %v. Recover and continue.", spec.Name, err)},
			)
			continue
		}

		a.emit(toolUpdate(a.name, spec.Name, result.Content, iteration))
		if spec.Terminal {
			return result.Content, nil
		}

		transcript = append(transcript,
			Message{Role: RoleAssistant, Content: response},
			Message{Role: RoleUser, Content: fmt.Sprintf("Tool %s returned: %s", spec.Name, result.Content)},
		)
	}

	return MaxIterationsMessage, nil
}

// seedPrompt composes the system message: role description plus the
// advertised tool capabilities and the invocation contract.
func (a *Agent) seedPrompt() string {
	var sb strings.Builder
	sb.WriteString(a.systemPrompt)

	specs := a.registry.Specs()
	if len(specs) == 0 {
		return sb.String()
	}

	sb.WriteString("\n\nAvailable tools:\n")
	for _, spec := range specs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", spec.Name, spec.Description))
	}
	sb.WriteString("Invoke a tool with: `tool:<name> <json arguments>` on its own line.\n")
	if _, _, ok := a.registry.Lookup("delegate"); ok {
		sb.WriteString("Delegate to a specialist with: `delegate:<name> <task>`.\n")
	}
	return sb.String()
}

func (a *Agent) toolNames() []string {
	specs := a.registry.Specs()
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	return names
}
