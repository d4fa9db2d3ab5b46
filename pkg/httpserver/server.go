package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
)

const (
	defaultReadTimeout       = 5 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultAddr              = ":80"
	defaultShutdownTimeout   = 3 * time.Second
)

type Server struct {
	server          *http.Server
	listener        net.Listener
	addr            string
	notify          chan error
	shutdownTimeout time.Duration
}

// New binds the address and serves handler in the background. Serving
// errors, other than a regular shutdown, are delivered through Notify.
func New(handler http.Handler, opts ...Option) (*Server, error) {
	s := &Server{
		server: &http.Server{
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			WriteTimeout:      defaultWriteTimeout,
		},
		addr:            defaultAddr,
		notify:          make(chan error, 1),
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	s.listener = listener

	s.start()

	return s, nil
}

func (s *Server) start() {
	go func() {
		err := s.server.Serve(s.listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Addr is the bound address, with the real port when ":0" was requested.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
