package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/feather-dev/feather/pkg/protocol"
	"github.com/feather-dev/feather/pkg/telemetry"
)

// viewer is one WebSocket connection watching the live tree.
type viewer struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
}

// enqueue queues an encoded frame without blocking. It reports false when
// the viewer's queue is full.
func (v *viewer) enqueue(frame []byte) bool {
	select {
	case v.send <- frame:
		return true
	default:
		return false
	}
}

// handleWebSocket upgrades the connection, sends the replay batch and
// serves events until the viewer leaves.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	queue := s.config.SendQueue
	if queue < 1 {
		queue = 1
	}
	v := &viewer{conn: conn, send: make(chan []byte, queue)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.nextViewer++
	v.id = s.nextViewer
	replay := &protocol.Batch{Seq: s.seq, Mutations: protocol.Replay(s.doc.Body())}
	v.send <- (&protocol.Frame{Type: protocol.FrameMutations, Payload: protocol.EncodeBatch(replay)}).Encode()
	s.viewers[v] = struct{}{}
	s.observe(func(c *telemetry.Collector) { c.ViewerConnected() })
	s.mu.Unlock()

	s.logger.Info("viewer connected", "viewer", v.id, "remote", r.RemoteAddr, "seq", replay.Seq)

	go s.writePump(v)
	s.readPump(v)
}

// readPump decodes event frames and dispatches them. Malformed frames are
// answered with an error frame; the connection stays open.
func (s *Server) readPump(v *viewer) {
	defer s.disconnect(v)

	for {
		mt, data, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read error", "viewer", v.id, "error", err)
				s.observe(func(c *telemetry.Collector) { c.WebSocketError("read") })
			}
			return
		}
		if mt != websocket.BinaryMessage {
			s.reject(v, "expected a binary frame")
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.reject(v, err.Error())
			continue
		}
		if frame.Type != protocol.FrameEvent {
			s.reject(v, fmt.Sprintf("unexpected %s frame", frame.Type))
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			s.reject(v, err.Error())
			continue
		}

		found, handled := s.Dispatch(ev.Target, ev.Type, ev.Value, ev.Data)
		if !found {
			s.reject(v, fmt.Sprintf("unknown node %d", ev.Target))
			continue
		}
		s.logger.Debug("event", "viewer", v.id, "seq", ev.Seq, "type", ev.Type, "target", ev.Target, "handled", handled)
	}
}

// writePump writes queued frames until the queue is closed.
func (s *Server) writePump(v *viewer) {
	defer v.conn.Close()

	for frame := range v.send {
		v.conn.SetWriteDeadline(s.writeDeadline())
		if err := v.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			s.logger.Debug("websocket write error", "viewer", v.id, "error", err)
			s.observe(func(c *telemetry.Collector) { c.WebSocketError("write") })
			return
		}
		s.observe(func(c *telemetry.Collector) { c.FrameSent() })
	}

	v.conn.SetWriteDeadline(s.writeDeadline())
	v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// reject queues an error frame for v.
func (s *Server) reject(v *viewer, msg string) {
	s.logger.Debug("rejected frame", "viewer", v.id, "reason", msg)
	frame := protocol.ErrorFrame(msg).Encode()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.viewers[v]; ok && !v.enqueue(frame) {
		s.dropLocked(v, "slow")
	}
}

func (s *Server) disconnect(v *viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.viewers[v]; ok {
		s.dropLocked(v, "")
	}
}

// dropLocked unregisters v and closes its queue, which ends its write pump.
// A non-empty reason is counted as a stream error.
func (s *Server) dropLocked(v *viewer, reason string) {
	delete(s.viewers, v)
	close(v.send)
	s.observe(func(c *telemetry.Collector) {
		c.ViewerDisconnected()
		if reason != "" {
			c.WebSocketError(reason)
		}
	})
	s.logger.Info("viewer disconnected", "viewer", v.id)
}

func (s *Server) observe(fn func(*telemetry.Collector)) {
	if s.config.Collector != nil {
		fn(s.config.Collector)
	}
}
