package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// session adapts one fiber websocket connection to the hub.Session
// contract. Writes are serialized under a mutex and bounded by the
// configured write deadline, so no send blocks indefinitely.
type session struct {
	conn          *websocket.Conn
	id            string
	peer          string
	path          string
	writeDeadline time.Duration

	writeMu sync.Mutex
	open    atomic.Bool
}

func newSession(conn *websocket.Conn, peer, path string, writeDeadline time.Duration) *session {
	s := &session{
		conn:          conn,
		id:            uuid.NewString(),
		peer:          peer,
		path:          path,
		writeDeadline: writeDeadline,
	}
	s.open.Store(true)
	return s
}

func (s *session) ID() string         { return s.id }
func (s *session) RemoteAddr() string { return s.peer }
func (s *session) Path() string       { return s.path }
func (s *session) IsOpen() bool       { return s.open.Load() }

func (s *session) SendText(payload string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeDeadline))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

// Close sends a close frame with the given status and tears the
// connection down. Only the first call does anything.
func (s *session) Close(code int) error {
	if !s.open.CompareAndSwap(true, false) {
		return nil
	}
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, ""), time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return s.conn.Close()
}

// markClosed flips the open flag without writing a close frame, for
// when the peer already closed the channel.
func (s *session) markClosed() {
	s.open.Store(false)
}

func (s *session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
}
