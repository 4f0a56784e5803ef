package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// subscriber is one websocket listening for session changes of an account.
type subscriber struct {
	accountID int64
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
}

// EventHub delivers session-change events to every subscriber of an account.
type EventHub struct {
	mu   sync.RWMutex
	subs map[int64]map[*subscriber]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[int64]map[*subscriber]struct{}),
	}
}

func (h *EventHub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[s.accountID] == nil {
		h.subs[s.accountID] = make(map[*subscriber]struct{})
	}
	h.subs[s.accountID][s] = struct{}{}
}

func (h *EventHub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *EventHub) removeLocked(s *subscriber) {
	set, ok := h.subs[s.accountID]
	if !ok {
		return
	}
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.send)
	if len(set) == 0 {
		delete(h.subs, s.accountID)
	}
}

// Subscribers reports how many sockets listen for accountID.
func (h *EventHub) Subscribers(accountID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[accountID])
}

func (h *EventHub) publish(accountID int64, ev SessionEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[accountID] {
		select {
		case s.send <- data:
		default:
			log.Printf("session_events_drop account_id=%d session_id=%s event=%s", accountID, s.sessionID, ev.Event)
		}
	}
}

func (h *EventHub) SignedIn(accountID int64, session SessionView) {
	h.publish(accountID, SessionEvent{Event: EventSignedIn, Session: &session})
}

// SignedOut tells the sockets bound to the revoked session that they are
// signed out, then disconnects them. Other sessions of the account stay
// signed in and hear nothing.
func (h *EventHub) SignedOut(accountID int64, sessionID string) {
	data, err := json.Marshal(SessionEvent{Event: EventSignedOut})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[accountID] {
		if s.sessionID != sessionID {
			continue
		}
		select {
		case s.send <- data:
		default:
			log.Printf("session_events_drop account_id=%d session_id=%s event=%s", accountID, s.sessionID, EventSignedOut)
		}
		h.removeLocked(s)
	}
}

// Close disconnects every subscriber.
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.subs {
		for s := range set {
			h.removeLocked(s)
		}
	}
}

// Serve sends the current session as the first frame, then streams changes
// until the client goes away.
func (h *EventHub) Serve(conn *websocket.Conn, current SessionView) {
	s := &subscriber{
		accountID: current.AccountID,
		sessionID: current.ID,
		conn:      conn,
		send:      make(chan []byte, 256),
	}

	first, err := json.Marshal(SessionEvent{Event: EventInitialSession, Session: &current})
	if err != nil {
		_ = conn.Close()
		return
	}
	s.send <- first

	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

func (h *EventHub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMsgSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// the stream is one-way; reads only service control frames
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
