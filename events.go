package mission

import "time"

// Update is one increment of mission progress pushed to the mission's
// event queue. Keys are free-form; well-known keys are "status",
// "iteration", "thinking", "tool_used", "tool_result", "result" and
// "error".
type Update map[string]any

// StatusCompleted is the terminal sentinel value. An Update carrying it
// definitively closes a mission's event stream.
const StatusCompleted = "completed"

// Terminal reports whether the update closes the event stream.
func (u Update) Terminal() bool {
	status, _ := u["status"].(string)
	return status == StatusCompleted
}

func startedUpdate(missionID, agent string) Update {
	return Update{"status": "started", "mission_id": missionID, "agent": agent, "ts": time.Now().UTC().Format(time.RFC3339)}
}

func thinkingUpdate(agent string, iteration int, text string) Update {
	return Update{"thinking": text, "iteration": iteration, "agent": agent}
}

func toolUpdate(agent, tool, result string, iteration int) Update {
	return Update{"tool_used": tool, "tool_result": result, "iteration": iteration, "agent": agent}
}

func errorUpdate(err error) Update {
	return Update{"error": err.Error()}
}

func resultUpdate(result string) Update {
	return Update{"result": result}
}

// terminalUpdate builds the sentinel. A successful mission's result
// rides along so consumers reading only the final event still see it.
func terminalUpdate(result string) Update {
	u := Update{"status": StatusCompleted}
	if result != "" {
		u["result"] = result
	}
	return u
}
