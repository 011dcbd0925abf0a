package net

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// peer is one connected viewer. Writes to a websocket must not overlap, so
// each peer carries its own lock, which also guards the last revision sent.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex

	sent     bool
	session  string
	revision uint64
}

// send writes a frame unless the peer already has this revision or a newer
// one of the same session.
func (p *peer) send(f frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sendLocked(f)
}

func (p *peer) sendLocked(f frame) error {
	if p.sent && f.session == p.session && f.revision <= p.revision {
		return nil
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteMessage(websocket.TextMessage, f.data); err != nil {
		return err
	}
	p.sent, p.session, p.revision = true, f.session, f.revision
	return nil
}

func (p *peer) addr() string {
	return p.conn.RemoteAddr().String()
}

// peerSet tracks the connected viewers.
type peerSet struct {
	peers map[*peer]bool
	mu    sync.RWMutex
}

func newPeerSet() *peerSet {
	return &peerSet{peers: make(map[*peer]bool)}
}

func (ps *peerSet) add(p *peer) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.peers[p] = true
	log.Printf("[MIRROR] viewer connected from %s", p.addr())
}

func (ps *peerSet) remove(p *peer) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if !ps.peers[p] {
		return
	}
	delete(ps.peers, p)
	p.conn.Close()
	log.Printf("[MIRROR] viewer %s disconnected", p.addr())
}

func (ps *peerSet) len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.peers)
}

func (ps *peerSet) snapshot() []*peer {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make([]*peer, 0, len(ps.peers))
	for p := range ps.peers {
		out = append(out, p)
	}
	return out
}

// broadcast sends f to every viewer and drops the ones that fail.
func (ps *peerSet) broadcast(f frame) {
	for _, p := range ps.snapshot() {
		if err := p.send(f); err != nil {
			log.Printf("[MIRROR] error sending to %s: %v", p.addr(), err)
			ps.remove(p)
		}
	}
}

func (ps *peerSet) closeAll() {
	for _, p := range ps.snapshot() {
		ps.remove(p)
	}
}
