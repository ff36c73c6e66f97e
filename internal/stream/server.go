// Package stream serves a running fluid scenario over HTTP and WebSocket so
// headless runs can be watched and poked from a browser.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stable-fluids/internal/core"
	"stable-fluids/pkg/fluid"
)

// Message types exchanged with clients.
const (
	TypeFrame   = "frame"
	TypeError   = "error"
	TypeImpulse = "impulse"
	TypeReset   = "reset"
	TypePause   = "pause"
)

var (
	// ErrUnknownControl is returned for control messages with an unknown type.
	ErrUnknownControl = errors.New("unknown control type")
	// ErrNotInjectable is returned when the sim does not accept impulses.
	ErrNotInjectable = errors.New("sim does not accept impulses")
)

// Frame is one snapshot of the scenario as sent to clients.
type Frame struct {
	Type     string       `json:"type"`
	Sim      string       `json:"sim"`
	Step     int          `json:"step"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Paused   bool         `json:"paused"`
	Density  []float32    `json:"density"`
	Velocity []float32    `json:"velocity,omitempty"`
	Stats    *fluid.Stats `json:"stats,omitempty"`
}

// Control is a client request. Fields unused by a type are ignored.
type Control struct {
	Type    string  `json:"type"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Density float64 `json:"density"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Seed    int64   `json:"seed"`
	Paused  bool    `json:"paused"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type statsProvider interface {
	Stats() fluid.Stats
}

type stepCounter interface {
	Steps() int
}

// Options tunes a Server.
type Options struct {
	// TPS is the simulation rate of Run.
	TPS int
	// Downsample averages factor×factor blocks before sending. Values below 2
	// send the full grid.
	Downsample int
	// Velocity includes the velocity field in frames.
	Velocity bool
	Logger   *log.Logger
}

// Server owns a sim and fans its frames out to WebSocket clients.
type Server struct {
	mu     sync.Mutex
	sim    core.Sim
	paused bool
	steps  int

	opts     Options
	log      *log.Logger
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// New wraps sim. The server is the only caller of sim after this point.
func New(sim core.Sim, opts Options) *Server {
	if opts.TPS <= 0 {
		opts.TPS = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		sim:  sim,
		opts: opts,
		log:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP routes: /ws for the stream and /frame for a
// single JSON snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/frame", s.handleFrame)
	return mux
}

// Run advances the sim at the configured rate and broadcasts after every
// batch of ticks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	clock := core.NewFixedStep(s.opts.TPS)
	ticker := time.NewTicker(clock.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			n := clock.Due(now)
			if n == 0 {
				continue
			}
			s.Advance(n)
			s.Broadcast()
		}
	}
}

// Advance steps the sim n times unless paused.
func (s *Server) Advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	for range n {
		s.sim.Step()
		s.steps++
	}
}

// Tick advances one step and broadcasts the result.
func (s *Server) Tick() Frame {
	s.Advance(1)
	return s.Broadcast()
}

// Snapshot builds a frame of the current state.
func (s *Server) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Apply handles one control message.
func (s *Server) Apply(c Control) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch c.Type {
	case TypeImpulse:
		injector, ok := s.sim.(core.Injector)
		if !ok {
			return ErrNotInjectable
		}
		if err := injector.Inject(c.X, c.Y, c.Density, c.VX, c.VY); err != nil {
			return fmt.Errorf("impulse at (%d,%d): %w", c.X, c.Y, err)
		}
	case TypeReset:
		s.sim.Reset(c.Seed)
		s.steps = 0
	case TypePause:
		s.paused = c.Paused
	default:
		return fmt.Errorf("%q: %w", c.Type, ErrUnknownControl)
	}
	return nil
}

// Clients reports the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Broadcast sends the current frame to every client and drops the ones that
// fail.
func (s *Server) Broadcast() Frame {
	frame := s.Snapshot()

	var failed []*websocket.Conn
	s.clientsMu.RLock()
	for conn, mu := range s.clients {
		mu.Lock()
		err := conn.WriteJSON(frame)
		mu.Unlock()
		if err != nil {
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	for _, conn := range failed {
		s.log.Printf("stream: dropping client %s", conn.RemoteAddr())
		s.removeClient(conn)
		conn.Close()
	}
	return frame
}

func (s *Server) frameLocked() Frame {
	size := s.sim.Size()
	density := s.sim.Density()
	frameSize := size
	if s.opts.Downsample > 1 {
		density, frameSize = core.Downsample(density, size, s.opts.Downsample)
	}
	frame := Frame{
		Type:    TypeFrame,
		Sim:     s.sim.Name(),
		Step:    s.steps,
		Width:   frameSize.W,
		Height:  frameSize.H,
		Paused:  s.paused,
		Density: toFloat32(density),
	}
	if counter, ok := s.sim.(stepCounter); ok {
		frame.Step = counter.Steps()
	}
	if s.opts.Velocity {
		frame.Velocity = s.velocityLocked(size)
	}
	if provider, ok := s.sim.(statsProvider); ok {
		stats := provider.Stats()
		frame.Stats = &stats
	}
	return frame
}

func (s *Server) velocityLocked(size core.Size) []float32 {
	vel := s.sim.Velocity()
	if s.opts.Downsample <= 1 {
		return toFloat32(vel)
	}
	vx := make([]float64, size.Cells())
	vy := make([]float64, size.Cells())
	for i := range vx {
		vx[i], vy[i] = vel[2*i], vel[2*i+1]
	}
	vx, _ = core.Downsample(vx, size, s.opts.Downsample)
	vy, _ = core.Downsample(vy, size, s.opts.Downsample)
	out := make([]float32, 2*len(vx))
	for i := range vx {
		out[2*i], out[2*i+1] = float32(vx[i]), float32(vy[i])
	}
	return out
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Snapshot()); err != nil {
		s.log.Printf("stream: encode frame: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("stream: upgrade: %v", err)
		return
	}
	defer conn.Close()

	mu := s.addClient(conn)
	defer s.removeClient(conn)

	if err := s.send(conn, mu, s.Snapshot()); err != nil {
		return
	}
	for {
		var c Control
		if err := conn.ReadJSON(&c); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Printf("stream: read: %v", err)
			}
			return
		}
		var reply any
		if err := s.Apply(c); err != nil {
			reply = errorMessage{Type: TypeError, Error: err.Error()}
		} else {
			reply = s.Snapshot()
		}
		if err := s.send(conn, mu, reply); err != nil {
			return
		}
	}
}

func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, v any) error {
	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		s.log.Printf("stream: write: %v", err)
		return err
	}
	return nil
}

func (s *Server) addClient(conn *websocket.Conn) *sync.Mutex {
	mu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = mu
	s.clientsMu.Unlock()
	return mu
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
