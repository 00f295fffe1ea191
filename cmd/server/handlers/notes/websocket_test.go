package notes

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"pastel-notes/cmd/server/testutil"
	"pastel-notes/internal/logger"
	"pastel-notes/internal/services/notes"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	wsMaxIncomingBytes = 1 << 20 // 1 MiB
)

func TestWSUpgradeSetsViewer(t *testing.T) {
	viewerID := uuid.New()
	app, _ := SetupWebSocketHandlersApp(t, viewerID)

	resp, err := app.Test(testutil.CreateWebSocketRequest("/ws"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.DecodeJSON[map[string]string](t, resp)
	assert.Equal(t, viewerID.String(), body["viewer_id"])
}

func TestWSUpgradeNonWebSocketRequest(t *testing.T) {
	app, _ := SetupWebSocketHandlersApp(t, uuid.New())

	resp, err := app.Test(testutil.CreateJSONRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func dialStream(t *testing.T, url string) *gorillaws.Conn {
	t.Helper()

	dialer := gorillaws.Dialer{HandshakeTimeout: 2 * time.Second}
	var (
		conn *gorillaws.Conn
		err  error
	)
	require.Eventually(t, func() bool {
		conn, _, err = dialer.Dial(url, nil)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "could not establish WebSocket connection")
	conn.SetReadLimit(wsMaxIncomingBytes)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *gorillaws.Conn) notes.ViewEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var ev notes.ViewEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWSStreamsSnapshotThenChanges(t *testing.T) {
	testutil.CreateTestApp(t)

	hub := notes.NewHub(8)
	store := notes.NewStore(notes.StaticSession{User: notes.NewUser("alice")}, logger.L(), notes.WithBus(hub))
	viewerID := store.Viewer().ID
	loop := testutil.StartTestLoop(t, store)

	var existing uuid.UUID
	require.NoError(t, loop.Do(context.Background(), func(s *notes.Store) {
		existing, _ = s.CreateNoteWithText(viewerID, "existing", "")
	}))

	conn := dialStream(t, serveWebSocket(t, NewWebSocketHandlers(hub, loop, viewerID, 900)))

	initial := readEvent(t, conn)
	assert.Equal(t, notes.EventTypeView, initial.Type)
	assert.Equal(t, viewerID, initial.ViewerID)
	require.Len(t, initial.Notes, 1)
	assert.Equal(t, existing, initial.Notes[0].ID)

	require.NoError(t, loop.Do(context.Background(), func(s *notes.Store) {
		s.TogglePinned(existing)
	}))

	changed := readEvent(t, conn)
	require.Len(t, changed.Notes, 1)
	assert.True(t, changed.Notes[0].Pinned)
}

func TestWSSessionTimeout(t *testing.T) {
	testutil.CreateTestApp(t)

	store := notes.NewStore(notes.StaticSession{User: notes.NewUser("alice")}, logger.L())
	loop := testutil.StartTestLoop(t, store)
	hub := NewMockHub()

	conn := dialStream(t, serveWebSocket(t, NewWebSocketHandlers(hub, loop, store.Viewer().ID, 1)))
	readEvent(t, conn)

	start := time.Now()
	require.NoError(t, conn.SetReadDeadline(start.Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	elapsed := time.Since(start)

	var closeErr *gorillaws.CloseError
	if errors.As(err, &closeErr) {
		assert.Equal(t, WSClosePolicyViolation, closeErr.Code, "Expected policy violation close code")
	}
	assert.Less(t, elapsed, 4*time.Second, "Connection should have been closed promptly")

	require.Eventually(t, func() bool {
		return hub.GetSubscriberCount() == 0
	}, time.Second, 10*time.Millisecond, "stream should unsubscribe on close")
}

func TestWSStoppedLoopClosesStream(t *testing.T) {
	testutil.CreateTestApp(t)
	hub := NewMockHub()

	conn := dialStream(t, serveWebSocket(t, NewWebSocketHandlers(hub, stoppedRunner{}, uuid.New(), 900)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestWSConnectionCleanup(t *testing.T) {
	hub := NewMockHub()
	viewerID := uuid.New()

	var sub *notes.Subscriber

	// Runs after the cancel registered by WebSocketConnectionTest.
	t.Cleanup(func() {
		require.Eventually(t, func() bool {
			return hub.GetSubscriberCount() == 0
		}, 100*time.Millisecond, 10*time.Millisecond,
			"Hub should have no subscribers after cleanup")

		select {
		case <-sub.Done:
		case <-time.After(50 * time.Millisecond):
			t.Fatal("Done channel should be closed after cleanup")
		}

		assert.Panics(t, func() {
			sub.Ch <- notes.ViewEvent{Type: notes.EventTypeView}
		}, "should panic when sending to closed channel")
	})

	sub = WebSocketConnectionTest(t, hub, viewerID)
	require.Equal(t, 1, hub.GetSubscriberCount())
}
