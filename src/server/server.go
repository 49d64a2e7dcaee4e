package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/alpkeskin/gotoon"
	"github.com/gin-gonic/gin"

	mission "github.com/Protocol-Lattice/go-mission"
)

// Options tune the HTTP surface.
type Options struct {
	// Heartbeat is the interval between SSE keep-alive comments.
	Heartbeat time.Duration
	// IdleTimeout ends a stream with a synthetic error event when no
	// update arrives within it.
	IdleTimeout time.Duration
}

// Server exposes the mission engine over HTTP: submissions as JSON and
// progress as a server-sent-event stream.
type Server struct {
	manager     *mission.Manager
	engine      *gin.Engine
	heartbeat   time.Duration
	idleTimeout time.Duration
}

// New wires the routes onto a fresh gin engine.
func New(manager *mission.Manager, opts Options) *Server {
	heartbeat := opts.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	idleTimeout := opts.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 2 * time.Minute
	}

	s := &Server{
		manager:     manager,
		engine:      gin.New(),
		heartbeat:   heartbeat,
		idleTimeout: idleTimeout,
	}
	s.engine.Use(gin.Recovery())

	s.engine.POST("/missions", s.handleSubmit)
	s.engine.GET("/missions", s.handleList)
	s.engine.GET("/missions/:id/stream", s.handleStream)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

type submitRequest struct {
	Query   string `json:"query" binding:"required"`
	AgentID int    `json:"agentId"`
}

// handleSubmit accepts a mission and returns its id immediately; the
// agent loop runs in the background.
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.manager.Submit(req.Query, req.AgentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"mission_id": id})
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"missions": s.manager.ActiveIDs()})
}

// handleStream relays a mission's updates as SSE until the terminal
// sentinel. Unknown ids yield a single error event.
func (s *Server) handleStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	id := c.Param("id")
	updates, err := s.manager.Stream(c.Request.Context(), id)
	if err != nil {
		writeEvent(c.Writer, mission.Update{"error": fmt.Sprintf("unknown mission: %s", id)})
		c.Writer.Flush()
		return
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()
	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			writeEvent(c.Writer, u)
			c.Writer.Flush()
			if u.Terminal() {
				return
			}
			resetTimer(idle, s.idleTimeout)

		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()

		case <-idle.C:
			writeEvent(c.Writer, mission.Update{"error": fmt.Sprintf("no progress within %s", s.idleTimeout)})
			c.Writer.Flush()
			return

		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeEvent(w io.Writer, u mission.Update) {
	data, err := json.Marshal(u)
	if err != nil {
		data = []byte(`{"error":"event serialization failed"}`)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
