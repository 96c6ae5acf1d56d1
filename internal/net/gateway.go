package net

import "sync"

// HostGateway counts open connections per remote host and enforces a
// per-host limit. It is shared by the accept goroutine and every session's
// close path, so all access goes through mu.
type HostGateway struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

// NewHostGateway creates a gateway allowing limit connections per host.
// A limit of 0 disables the check; hosts are still counted.
func NewHostGateway(limit int) *HostGateway {
	return &HostGateway{
		counts: make(map[string]int),
		limit:  limit,
	}
}

// Enter registers a new connection from host. It returns false, without
// counting the connection, when host is already at the limit.
func (g *HostGateway) Enter(host string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.counts[host]
	if g.limit > 0 && n >= g.limit {
		return false
	}
	g.counts[host] = n + 1
	return true
}

// Exit releases one connection from host. Unknown hosts are ignored.
func (g *HostGateway) Exit(host string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.counts[host]
	if !ok {
		return
	}
	if n <= 1 {
		delete(g.counts, host)
		return
	}
	g.counts[host] = n - 1
}

// Count returns the number of open connections from host.
func (g *HostGateway) Count(host string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[host]
}

// Hosts returns the number of distinct hosts with open connections.
func (g *HostGateway) Hosts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.counts)
}
