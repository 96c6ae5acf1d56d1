package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	viewerBuffer = 16
	writeWait    = 5 * time.Second
	readWait     = 60 * time.Second
)

// EntityView is one mobile in a snapshot.
type EntityView struct {
	ID        uint32 `json:"id"`
	Kind      string `json:"kind"` // "player" or "npc"
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	RunEnergy int    `json:"run_energy,omitempty"`
	Running   bool   `json:"running,omitempty"`
}

// Snapshot is the world state pushed to viewers.
type Snapshot struct {
	Tick     uint64       `json:"tick"`
	Players  int          `json:"players"`
	Npcs     int          `json:"npcs"`
	Entities []EntityView `json:"entities"`
}

// Hub fans snapshots out to websocket viewers. Publish is called from the
// game loop and never blocks: a viewer whose buffer is full is dropped.
type Hub struct {
	mu      sync.Mutex
	viewers map[uint64]chan []byte
	nextID  uint64

	upgrader websocket.Upgrader
	srv      *http.Server
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		viewers: make(map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Handler serves the /ws endpoint.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// Start listens on addr and serves viewers in the background.
func (h *Hub) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	h.srv = &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error("監控伺服器錯誤", zap.Error(err))
		}
	}()
	h.log.Info("監控伺服器啟動", zap.String("addr", ln.Addr().String()))
	return nil
}

// Shutdown stops the HTTP server and disconnects every viewer.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	for id, ch := range h.viewers {
		close(ch)
		delete(h.viewers, id)
	}
	h.mu.Unlock()
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}

// Publish encodes s once and queues it for every viewer.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.viewers) == 0 {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		h.log.Error("快照編碼失敗", zap.Error(err))
		return
	}
	for id, ch := range h.viewers {
		select {
		case ch <- b:
		default:
			close(ch)
			delete(h.viewers, id)
			h.log.Warn("監控端過慢，已斷開", zap.Uint64("viewer", id))
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

func (h *Hub) join() (uint64, chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan []byte, viewerBuffer)
	h.viewers[h.nextID] = ch
	return h.nextID, ch
}

func (h *Hub) leave(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.viewers[id]; ok {
		close(ch)
		delete(h.viewers, id)
	}
}

func (h *Hub) serveWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, out := h.join()
	defer h.leave(id)
	h.log.Debug("監控端連線", zap.Uint64("viewer", id), zap.String("remote", r.RemoteAddr))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for b := range out {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "dropped"),
			time.Now().Add(time.Second))
	}()

	// Viewers never send data; reading only detects disconnects.
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.leave(id)
	conn.Close()
	<-done
}
