package notes

import (
	"crypto/rand"
	"net"
	"sync"
	"testing"
	"time"

	"pastel-notes/cmd/server/ctxkeys"
	"pastel-notes/cmd/server/testutil"
	"pastel-notes/internal/services/notes"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

// MockHub implements the Hub interface for testing
type MockHub struct {
	mu             sync.Mutex
	subscribers    map[ulid.ULID]*notes.Subscriber
	subscribeCount int
}

func NewMockHub() *MockHub {
	return &MockHub{
		subscribers: make(map[ulid.ULID]*notes.Subscriber),
	}
}

func (m *MockHub) Subscribe(connULID ulid.ULID, viewerID uuid.UUID) (*notes.Subscriber, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := &notes.Subscriber{
		ViewerID: viewerID,
		Ch:       make(chan notes.ViewEvent, 10),
		Done:     make(chan struct{}),
	}
	m.subscribers[connULID] = sub
	m.subscribeCount++

	return sub, func() { m.Unsubscribe(connULID) }
}

func (m *MockHub) Unsubscribe(connULID ulid.ULID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub, exists := m.subscribers[connULID]; exists {
		close(sub.Ch)
		close(sub.Done)
		delete(m.subscribers, connULID)
	}
}

func (m *MockHub) GetSubscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

// SetupWebSocketHandlersApp creates a test app whose upgrade route echoes the locals WSUpgrade sets
func SetupWebSocketHandlersApp(t *testing.T, viewerID uuid.UUID) (*fiber.App, *MockHub) {
	t.Helper()

	app := testutil.CreateTestApp(t)
	hub := NewMockHub()
	wsHandlers := NewWebSocketHandlers(hub, stoppedRunner{}, viewerID, 900)

	app.Get("/ws", wsHandlers.WSUpgrade, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"viewer_id": c.Locals(ctxkeys.ViewerIDKey),
		})
	})

	return app, hub
}

// serveWebSocket listens on a random local port and returns the stream URL
func serveWebSocket(t *testing.T, h *WebSocketHandlers) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/ws", h.WSUpgrade, websocket.New(h.WSNotesStream))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })

	return "ws://" + ln.Addr().String() + "/ws"
}

// WebSocketConnectionTest subscribes to hub and unsubscribes when the test ends
func WebSocketConnectionTest(t *testing.T, hub *MockHub, viewerID uuid.UUID) *notes.Subscriber {
	t.Helper()

	connULID := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	sub, cancel := hub.Subscribe(connULID, viewerID)
	t.Cleanup(cancel)

	return sub
}
