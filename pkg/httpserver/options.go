package httpserver

import (
	"net"
	"time"
)

type Option func(*Server)

// Port sets the listening port on all interfaces. "0" picks a free port.
func Port(port string) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort("", port)
	}
}

func ReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.server.ReadTimeout = timeout
		}
	}
}

func WriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.server.WriteTimeout = timeout
		}
	}
}

func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}
