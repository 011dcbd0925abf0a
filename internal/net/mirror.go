// Package net shares a live, read-only view of the canvas on the local
// network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
)

// Frame is the message pushed to viewers on every change.
type Frame struct {
	Type    string        `json:"type"`
	Surface state.Surface `json:"surface"`
}

// Mirror broadcasts the latest surface to websocket viewers. Viewers cannot
// send edits; anything they send is discarded.
type Mirror struct {
	peers    *peerSet
	upgrader websocket.Upgrader
	notify   chan struct{}

	mu     sync.RWMutex
	latest state.Surface
}

func NewMirror() *Mirror {
	return &Mirror{
		peers:  newPeerSet(),
		notify: make(chan struct{}, 1),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish records s as the latest surface and wakes the broadcaster. It never
// blocks; bursts of changes are coalesced into one frame. Surfaces older than
// the current one are ignored.
func (m *Mirror) Publish(s state.Surface) {
	m.mu.Lock()
	if s.SessionID == m.latest.SessionID && s.Revision < m.latest.Revision {
		m.mu.Unlock()
		return
	}
	m.latest = s
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Latest returns the most recently published surface.
func (m *Mirror) Latest() state.Surface {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Clients returns the number of connected viewers.
func (m *Mirror) Clients() int {
	return m.peers.len()
}

// Run broadcasts published surfaces until ctx is done, then disconnects
// every viewer.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.peers.closeAll()
			return
		case <-m.notify:
			f, err := m.encode()
			if err != nil {
				log.Printf("[MIRROR] encode frame: %v", err)
				continue
			}
			m.peers.broadcast(f)
		}
	}
}

// frame is an encoded Frame tagged with the revision it carries.
type frame struct {
	data     []byte
	session  string
	revision uint64
}

func (m *Mirror) encode() (frame, error) {
	s := m.Latest()
	data, err := json.Marshal(Frame{Type: "surface", Surface: s})
	if err != nil {
		return frame{}, err
	}
	return frame{data: data, session: s.SessionID, revision: s.Revision}, nil
}

// Handler serves the viewer page, the websocket feed, an SVG snapshot and a
// health check.
func (m *Mirror) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", m.serveIndex)
	mux.HandleFunc("/ws", m.serveWS)
	mux.HandleFunc("/surface.svg", m.serveSVG)
	mux.HandleFunc("/health", m.serveHealth)
	return mux
}

// ListenAndServe serves Handler on port until ctx is done.
func (m *Mirror) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[MIRROR] listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror server on port %d: %w", port, err)
	}
	return nil
}

func (m *Mirror) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] upgrade failed: %v", err)
		return
	}
	p := &peer{conn: conn}

	// Hold the peer lock until the first frame is out so a concurrent
	// broadcast cannot overtake it.
	p.mu.Lock()
	m.peers.add(p)
	f, err := m.encode()
	if err == nil {
		err = p.sendLocked(f)
	}
	p.mu.Unlock()
	if err != nil {
		m.peers.remove(p)
		return
	}

	go func() {
		defer m.peers.remove(p)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (m *Mirror) serveSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := export.SVG(w, m.Latest()); err != nil {
		log.Printf("[MIRROR] svg snapshot: %v", err)
	}
}

func (m *Mirror) serveHealth(w http.ResponseWriter, r *http.Request) {
	latest := m.Latest()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"session":  latest.SessionID,
		"revision": latest.Revision,
		"clients":  m.Clients(),
	})
}

func (m *Mirror) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, viewerPage)
}

// viewerPage reloads the SVG snapshot whenever a frame arrives.
const viewerPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>SketchBoard</title></head>
<body style="margin:0;background:#e4d8b4">
<img id="surface" src="/surface.svg" alt="canvas">
<script>
const img = document.getElementById("surface");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const frame = JSON.parse(ev.data);
  img.src = "/surface.svg?rev=" + frame.surface.revision;
};
</script>
</body>
</html>
`
