package net

import (
	"io"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testOptions() SessionOptions {
	return SessionOptions{InQueueSize: 4, OutQueueSize: 4, WriteTimeout: time.Second}
}

func TestServerRejectsHostOverLimit(t *testing.T) {
	gw := NewHostGateway(1)
	srv, err := NewServer("127.0.0.1:0", gw, testOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer srv.Shutdown()
	go srv.AcceptLoop()

	first, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer first.Close()

	var sess *Session
	select {
	case sess = <-srv.NewSessions():
	case <-time.After(2 * time.Second):
		t.Fatal("first connection was not admitted")
	}
	if sess.Host != "127.0.0.1" {
		t.Fatalf("Host = %q", sess.Host)
	}

	second, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer second.Close()
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := second.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("second connection read err = %v, want EOF", err)
	}
	if got := gw.Count("127.0.0.1"); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}

	sess.Close()
	sess.Close()
	if got := gw.Count("127.0.0.1"); got != 0 {
		t.Fatalf("Count after close = %d, want 0", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	gw := NewHostGateway(0)
	gw.Enter("pipe")
	sess := NewSession(server, 1, "pipe", gw, testOptions(), zap.NewNop())
	sess.Start()
	defer sess.Close()

	go WriteFrame(client, []byte{2, 0, 0})
	select {
	case got := <-sess.InQueue:
		if len(got) != 3 || got[0] != 2 {
			t.Fatalf("payload = %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound packet")
	}

	sess.Send([]byte{6, 1, 2})
	if sess.Pending() != 1 {
		t.Fatalf("Pending = %d", sess.Pending())
	}
	sess.FlushOutput()
	if sess.Pending() != 0 {
		t.Fatalf("Pending after flush = %d", sess.Pending())
	}
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	frame, err := ReadFrame(client)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame[0] != 6 {
		t.Fatalf("opcode = %d", frame[0])
	}
}
