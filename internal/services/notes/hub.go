package notes

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"pastel-notes/internal/logger"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Subscriber represents a connection that receives view events
type Subscriber struct {
	ViewerID uuid.UUID
	Ch       chan ViewEvent
	Done     chan struct{}
}

// ConnInfo holds connection metadata
type ConnInfo struct {
	ID          ulid.ULID
	ConnectedAt time.Time
	Subscriber  *Subscriber
}

// viewerSubs holds subscribers for a specific viewer
type viewerSubs struct {
	mu sync.RWMutex
	m  map[ulid.ULID]ConnInfo
}

// Hub fans view events out to stream connections
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*viewerSubs
	connIndex   map[ulid.ULID]uuid.UUID
	bufferSize  int
	dropped     uint64
	delivered   uint64
}

// NewHub creates a new event hub with configurable buffer size
func NewHub(bufferSize int) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]*viewerSubs),
		connIndex:   make(map[ulid.ULID]uuid.UUID),
		bufferSize:  bufferSize,
	}
}

// Subscribe adds a new subscriber to the hub
func (h *Hub) Subscribe(connULID ulid.ULID, viewerID uuid.UUID) (*Subscriber, func()) {
	log := logger.L()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("subscribing connection", "conn_id", connULID.String(), "viewer_id", viewerID)
	}

	h.mu.Lock()
	bucket, exists := h.subscribers[viewerID]
	if !exists {
		bucket = &viewerSubs{
			m: make(map[ulid.ULID]ConnInfo),
		}
		h.subscribers[viewerID] = bucket
	}
	h.connIndex[connULID] = viewerID
	bucket.mu.Lock()
	h.mu.Unlock()
	defer bucket.mu.Unlock()

	sub := &Subscriber{
		ViewerID: viewerID,
		Ch:       make(chan ViewEvent, h.bufferSize),
		Done:     make(chan struct{}),
	}

	bucket.m[connULID] = ConnInfo{
		ID:          connULID,
		ConnectedAt: time.Now(),
		Subscriber:  sub,
	}

	cancel := func() {
		h.Unsubscribe(connULID)
	}
	return sub, cancel
}

// Unsubscribe removes a subscriber and closes its channels. Unknown ids are ignored.
func (h *Hub) Unsubscribe(connULID ulid.ULID) {
	log := logger.L()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("unsubscribing connection", "conn_id", connULID.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	vid, ok := h.connIndex[connULID]
	if !ok {
		return
	}
	delete(h.connIndex, connULID)

	bucket := h.subscribers[vid]
	if bucket == nil {
		return
	}

	bucket.mu.Lock()
	connInfo, exists := bucket.m[connULID]
	if exists {
		delete(bucket.m, connULID)
		close(connInfo.Subscriber.Ch)
		close(connInfo.Subscriber.Done)
	}
	empty := len(bucket.m) == 0
	bucket.mu.Unlock()

	if empty {
		delete(h.subscribers, vid)
	}
}

// Broadcast delivers ev to every subscriber of ev.ViewerID
func (h *Hub) Broadcast(_ context.Context, ev ViewEvent) {
	log := logger.L()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("broadcasting event", "viewer_id", ev.ViewerID, "event_type", ev.Type, "notes", len(ev.Notes))
	}

	bucket := h.bucket(ev.ViewerID)
	if bucket == nil {
		return
	}

	bucket.mu.RLock()
	for _, connInfo := range bucket.m {
		sendOrDrop(connInfo.Subscriber.Ch, ev, func() {
			atomic.AddUint64(&h.dropped, 1)
			log.Warn("outbox full, dropping event", "conn_id", connInfo.ID.String(), "viewer_id", ev.ViewerID, "event_type", ev.Type)
		}, func() {
			atomic.AddUint64(&h.delivered, 1)
		})
	}
	bucket.mu.RUnlock()
}

// GetSubscriberCount returns the current number of subscribers
func (h *Hub) GetSubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	totalCount := 0
	for _, bucket := range h.subscribers {
		bucket.mu.RLock()
		totalCount += len(bucket.m)
		bucket.mu.RUnlock()
	}
	return totalCount
}

// sendOrDrop is the only place that can decide to drop an event.
func sendOrDrop(ch chan ViewEvent, ev ViewEvent, onDrop, onSent func()) {
	select {
	case ch <- ev:
		onSent()
	default:
		onDrop()
	}
}

// Stats returns current counters for observability / tests.
func (h *Hub) Stats() (subscribers int, dropped uint64) {
	return h.GetSubscriberCount(), atomic.LoadUint64(&h.dropped)
}

// Delivered returns how many events reached a subscriber outbox.
func (h *Hub) Delivered() uint64 {
	return atomic.LoadUint64(&h.delivered)
}

func (h *Hub) bucket(vid uuid.UUID) *viewerSubs {
	h.mu.RLock()
	b := h.subscribers[vid]
	h.mu.RUnlock()
	return b
}
