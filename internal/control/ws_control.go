package control

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/deskswipe/internal/gesture"
	"github.com/frudas24/deskswipe/internal/pager"
	"github.com/frudas24/deskswipe/internal/session"
)

const (
	outboxSize   = 64
	writeTimeout = 2 * time.Second
)

// ErrLoopClosed is returned when the gesture loop no longer accepts work.
var ErrLoopClosed = errors.New("gesture loop closed")

// Poster queues work on the goroutine that owns the tracker.
type Poster interface {
	Post(fn func()) bool
}

// Server handles websocket control input and streams gesture progress back.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	loop     Poster
	tracker  *gesture.Tracker
	pager    *pager.Pager
	pan      *gesture.PanRecognizer
	wheel    *gesture.Dispatcher
	logger   *slog.Logger
	now      func() time.Time
	conn     *websocket.Conn
	out      chan any
	written  chan struct{}
}

// NewServer creates a control websocket server feeding tracker. The pager
// should already be attached to the tracker so that state reports follow
// its update. NewServer must run before the loop starts.
func NewServer(sess *session.Session, loop Poster, tracker *gesture.Tracker, pg *pager.Pager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		session: sess,
		loop:    loop,
		tracker: tracker,
		pager:   pg,
		wheel:   gesture.NewDispatcher(),
		logger:  logger,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.pan = gesture.NewPanRecognizer(tracker)
	tracker.Attach(s.wheel)
	tracker.OnBegin(func(b gesture.Begin) {
		if tracker.State() != gesture.StateScrolling {
			return
		}
		s.send(BeginEvent{T: EvtBegin, Channel: b.Channel.String(), X: b.X, Y: b.Y})
	})
	tracker.OnUpdate(func(p float64) {
		s.send(UpdateEvent{T: EvtUpdate, Progress: p})
	})
	tracker.OnEnd(func(e gesture.End) {
		s.send(EndEvent{T: EvtEnd, DurationMs: e.Duration.Milliseconds(), Target: e.Target})
		s.sendState()
	})
	return s
}

// SetDragThreshold overrides how far a pointer travels before dragging.
func (s *Server) SetDragThreshold(px float64) {
	s.pan.SetThreshold(px)
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("control upgrade failed", "err", err)
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.logger.Warn("control connection rejected", "remote", r.RemoteAddr, "err", err)
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	s.logger.Info("control connected", "remote", r.RemoteAddr)
	s.loop.Post(s.sendState)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			s.logger.Debug("control read ended", "err", err)
			return
		}
		if err := s.handleMessage(msg); err != nil {
			s.logger.Warn("control message failed", "t", msg.T, "err", err)
			return
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	s.out = make(chan any, outboxSize)
	s.written = make(chan struct{})
	go s.writeLoop(conn, s.out, s.written)
	return nil
}

// cleanupConn clears the active connection when closed and releases any
// drag it left open.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	var written chan struct{}
	if s.conn == conn {
		s.conn = nil
		close(s.out)
		s.out = nil
		written = s.written
	}
	s.mu.Unlock()
	if written != nil {
		<-written
	}
	_ = conn.Close()
	s.loop.Post(func() { s.pan.HandleMove(false, 0, 0, 0, s.now()) })
	s.logger.Info("control disconnected")
}

// writeLoop sends queued events until out is closed.
func (s *Server) writeLoop(conn *websocket.Conn, out <-chan any, written chan<- struct{}) {
	defer close(written)
	for v := range out {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(v); err != nil {
			s.logger.Debug("control write failed", "err", err)
			for range out {
			}
			return
		}
	}
}

// send queues v for the active connection, dropping it when none is open
// or the client is not keeping up.
func (s *Server) send(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		return
	}
	select {
	case s.out <- v:
	default:
		s.logger.Debug("control outbox full, dropping event")
	}
}

// sendState reports the committed page. Runs on the loop.
func (s *Server) sendState() {
	snap := s.pager.Snapshot()
	s.send(StateEvent{T: EvtState, Page: snap.Page, Pages: snap.Pages, InputEnabled: s.session.InputEnabled()})
}

// handleMessage dispatches a single control message onto the loop.
func (s *Server) handleMessage(msg Message) error {
	switch msg.T {
	case MsgScroll:
		x, y := NormToView(msg.X, msg.Y, s.session.Viewport())
		at := s.stamp(msg.Time)
		ev := ScrollEvent(msg, x, y, at)
		return s.post(func() { s.wheel.Dispatch(ev) })
	case MsgDown, MsgMove, MsgUp:
		return s.handlePointer(msg)
	case MsgSize:
		if !s.session.SetViewport(msg.W, msg.H) {
			return nil
		}
		return s.post(func() {
			span := msg.W
			if s.tracker.Preferences().Orientation == gesture.Vertical {
				span = msg.H
			}
			s.pager.SetDistance(float64(span))
		})
	case MsgInputEnabled:
		if msg.Enabled == nil {
			return nil
		}
		enabled := *msg.Enabled
		s.session.SetInputEnabled(enabled)
		return s.post(func() {
			s.tracker.SetEnabled(enabled)
			s.sendState()
		})
	case MsgCancel:
		return s.post(s.tracker.Cancel)
	default:
		return nil
	}
}

// handlePointer feeds pointer events to the pan recognizer.
func (s *Server) handlePointer(msg Message) error {
	x, y := NormToView(msg.X, msg.Y, s.session.Viewport())
	at := s.stamp(msg.Time)
	enabled := s.session.InputEnabled()
	return s.post(func() {
		switch msg.T {
		case MsgDown:
			s.pan.HandleDown(enabled, msg.ID, x, y, at)
		case MsgMove:
			s.pan.HandleMove(enabled, msg.ID, x, y, at)
		case MsgUp:
			s.pan.HandleUp(enabled, msg.ID, x, y, at)
		}
	})
}

// post queues fn on the loop.
func (s *Server) post(fn func()) error {
	if !s.loop.Post(fn) {
		return ErrLoopClosed
	}
	return nil
}

// stamp converts a client timestamp, falling back to the server clock.
func (s *Server) stamp(ms float64) time.Time {
	if at := MsToTime(ms); !at.IsZero() {
		return at
	}
	return s.now()
}
