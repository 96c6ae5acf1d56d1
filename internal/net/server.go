package net

import (
	"net"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server accepts TCP connections, admits them through the host gateway and
// hands new sessions to the game loop over a channel.
type Server struct {
	listener net.Listener
	gateway  *HostGateway
	nextID   atomic.Uint64
	newConns chan *Session
	opts     SessionOptions
	log      *zap.Logger
	closeCh  chan struct{}
}

func NewServer(bindAddr string, gw *HostGateway, opts SessionOptions, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		gateway:  gw,
		newConns: make(chan *Session, 64),
		opts:     opts,
		log:      log,
		closeCh:  make(chan struct{}),
	}, nil
}

// AcceptLoop runs in its own goroutine until Shutdown.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("連線接受失敗", zap.Error(err))
			continue
		}
		s.admit(conn)
	}
}

func (s *Server) admit(conn net.Conn) {
	host := hostOf(conn.RemoteAddr())
	if !s.gateway.Enter(host) {
		s.log.Warn("同一主機連線數已達上限，拒絕連線",
			zap.String("host", host),
			zap.Int("open", s.gateway.Count(host)),
		)
		conn.Close()
		return
	}

	id := s.nextID.Add(1)
	sess := NewSession(conn, id, host, s.gateway, s.opts, s.log)

	select {
	case s.newConns <- sess:
		sess.Start()
		s.log.Info("玩家連線", zap.Uint64("session", id), zap.String("host", host))
	default:
		s.log.Warn("連線佇列已滿，拒絕新連線", zap.String("host", host))
		sess.Close()
	}
}

func hostOf(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// NewSessions returns the channel of newly admitted sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
