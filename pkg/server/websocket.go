package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/rdom/internal/errors"
)

// HandleWebSocket upgrades the request and serves a session until the client
// disconnects or the server shuts down.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", errors.New(errors.CodeServerUpgrade).Wrap(err))
		return
	}

	sess := newSession(s.config, s.metrics, s.tracer, s.logger)
	s.register(sess, conn)
	s.metrics.ConnectionOpened()
	defer func() {
		s.unregister(sess)
		s.metrics.ConnectionClosed()
		sess.Close()
		conn.Close()
	}()

	ctx := r.Context()
	if err := s.writeFrame(conn, sess.Mount(ctx)); err != nil {
		return
	}
	s.readLoop(ctx, conn, sess)
}

// readLoop reads messages until the connection closes. Each message is
// handled to completion, including the drained re-render, before the next
// one is read.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *Session) {
	for {
		conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "session", sess.ID, "error", err)
			}
			return
		}

		var msg Message
		var frame Frame
		if err := json.Unmarshal(data, &msg); err != nil {
			s.metrics.Message("invalid", "error")
			frame = sess.errorFrame(errors.New(errors.CodeServerMessage).WithDetail(err.Error()))
		} else {
			frame = sess.Handle(ctx, msg)
		}

		if err := s.writeFrame(conn, frame); err != nil {
			return
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	if conn == nil {
		return ErrNoConnection
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := conn.WriteJSON(f); err != nil {
		s.logger.Error("write error", "session", f.Session, "error", err)
		return err
	}
	return nil
}
