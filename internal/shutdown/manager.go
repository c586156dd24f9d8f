package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rank-pooler/internal/logger"
)

// Manager turns SIGINT/SIGTERM into cancellation of its context so the
// running driver can leave its loop and release what it holds.
type Manager struct {
	logger  logger.Logger
	sigChan chan os.Signal
	once    sync.Once
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewManager(parent context.Context, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)

	return &Manager{
		logger:  log,
		sigChan: make(chan os.Signal, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *Manager) Listen() {
	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-m.sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.ctx.Done():
		}
	}()
}

// Shutdown cancels the context. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		signal.Stop(m.sigChan)
		m.cancel()
	})
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}
