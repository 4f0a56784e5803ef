package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *EventHub, current SessionView) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, current)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) SessionEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev SessionEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestEventHub_InitialThenChanges(t *testing.T) {
	hub := NewEventHub()
	current := SessionView{ID: "s-1", AccountID: 5, Email: "a@x.com", ExpiresAt: time.Now().Add(time.Hour)}
	conn := dialHub(t, hub, current)

	first := readEvent(t, conn)
	assert.Equal(t, EventInitialSession, first.Event)
	require.NotNil(t, first.Session)
	assert.Equal(t, "s-1", first.Session.ID)

	require.Eventually(t, func() bool { return hub.Subscribers(5) == 1 }, time.Second, 10*time.Millisecond)

	hub.SignedIn(5, SessionView{ID: "s-2", AccountID: 5})
	ev := readEvent(t, conn)
	assert.Equal(t, EventSignedIn, ev.Event)
	assert.Equal(t, "s-2", ev.Session.ID)

	// other accounts do not hear it
	hub.SignedIn(6, SessionView{ID: "s-9", AccountID: 6})

	hub.SignedOut(5, "s-1")
	ev = readEvent(t, conn)
	assert.Equal(t, EventSignedOut, ev.Event)
	assert.Nil(t, ev.Session)

	assert.Equal(t, 0, hub.Subscribers(5))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestEventHub_SignOutOfOtherSessionIsSilent(t *testing.T) {
	hub := NewEventHub()
	conn := dialHub(t, hub, SessionView{ID: "s-1", AccountID: 5})
	readEvent(t, conn)
	require.Eventually(t, func() bool { return hub.Subscribers(5) == 1 }, time.Second, 10*time.Millisecond)

	hub.SignedOut(5, "s-other")
	assert.Equal(t, 1, hub.Subscribers(5))

	// the next frame is the sign-in, so no null session was sent for s-other
	hub.SignedIn(5, SessionView{ID: "s-3", AccountID: 5})
	ev := readEvent(t, conn)
	assert.Equal(t, EventSignedIn, ev.Event)
	require.NotNil(t, ev.Session)
	assert.Equal(t, "s-3", ev.Session.ID)

	hub.Close()
	assert.Equal(t, 0, hub.Subscribers(5))
}
