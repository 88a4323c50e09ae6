// Package lifecycle runs the indexfs HTTP servers and coordinates their
// graceful shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marmos91/indexfs/internal/logger"
)

// DefaultShutdownTimeout is used when no timeout is configured.
const DefaultShutdownTimeout = 30 * time.Second

// AuxiliaryServer is an HTTP server run by the Service (API, metrics).
type AuxiliaryServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Port() int
}

// Service orchestrates server startup and graceful shutdown.
type Service struct {
	shutdownTimeout time.Duration
	servers         []namedServer

	serveOnce sync.Once
	served    bool
}

type namedServer struct {
	name   string
	server AuxiliaryServer
}

// New creates a lifecycle service.
func New(shutdownTimeout time.Duration) *Service {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &Service{shutdownTimeout: shutdownTimeout}
}

// AddServer registers a server under name. Must be called before Serve.
func (s *Service) AddServer(name string, server AuxiliaryServer) {
	if s.served {
		panic("cannot add server after Serve() has been called")
	}
	if server == nil {
		return
	}
	s.servers = append(s.servers, namedServer{name: name, server: server})
	logger.Info("Server registered", "server", name, "port", server.Port())
}

// Serve starts every registered server and blocks until ctx is cancelled
// or one of them fails. Either way all servers are stopped before it
// returns. Cancellation is a clean exit and returns nil.
func (s *Service) Serve(ctx context.Context) error {
	err := errors.New("service already served")
	s.serveOnce.Do(func() {
		s.served = true
		err = s.serve(ctx)
	})
	return err
}

func (s *Service) serve(ctx context.Context) error {
	logger.Info("Starting indexfs", "servers", len(s.servers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(s.servers))
	var wg sync.WaitGroup
	for _, ns := range s.servers {
		wg.Add(1)
		go func(ns namedServer) {
			defer wg.Done()
			if err := ns.server.Start(runCtx); err != nil {
				logger.Error("Server error", "server", ns.name, logger.Err(err))
				errCh <- fmt.Errorf("%s server: %w", ns.name, err)
			}
		}(ns)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", "reason", ctx.Err())
	case serveErr = <-errCh:
		logger.Error("Server failed, initiating shutdown", logger.Err(serveErr))
	}

	s.shutdown()
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		logger.Warn("Shutdown timed out", "timeout", s.shutdownTimeout)
	}

	logger.Info("indexfs stopped")
	return serveErr
}

// shutdown stops servers in reverse registration order.
func (s *Service) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	for i := len(s.servers) - 1; i >= 0; i-- {
		ns := s.servers[i]
		logger.Debug("Stopping server", "server", ns.name)
		if err := ns.server.Stop(ctx); err != nil {
			logger.Error("Server shutdown error", "server", ns.name, logger.Err(err))
		}
	}
}
