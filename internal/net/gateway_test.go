package net

import (
	"sync"
	"testing"
)

func TestGatewayCountsAndReleases(t *testing.T) {
	g := NewHostGateway(0)
	g.Enter("10.0.0.1")
	g.Enter("10.0.0.1")
	g.Enter("10.0.0.2")

	if got := g.Count("10.0.0.1"); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	g.Exit("10.0.0.1")
	g.Exit("10.0.0.1")
	if got := g.Count("10.0.0.1"); got != 0 {
		t.Fatalf("Count after exits = %d", got)
	}
	if g.Hosts() != 1 {
		t.Fatalf("Hosts = %d, want released host removed", g.Hosts())
	}
	g.Exit("never-seen")
	if g.Count("never-seen") != 0 {
		t.Fatal("Exit of unknown host created an entry")
	}
}

func TestGatewayEnforcesLimit(t *testing.T) {
	g := NewHostGateway(2)
	if !g.Enter("h") || !g.Enter("h") {
		t.Fatal("first two connections should be admitted")
	}
	if g.Enter("h") {
		t.Fatal("third connection admitted past the limit")
	}
	if g.Count("h") != 2 {
		t.Fatalf("rejected entry was counted: %d", g.Count("h"))
	}
	g.Exit("h")
	if !g.Enter("h") {
		t.Fatal("connection rejected after a slot was released")
	}
}

func TestGatewayConcurrentAccess(t *testing.T) {
	g := NewHostGateway(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Enter("shared")
				g.Exit("shared")
			}
			g.Enter("shared")
		}()
	}
	wg.Wait()
	if got := g.Count("shared"); got != 50 {
		t.Fatalf("Count = %d, want 50", got)
	}
}
