package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/core"
)

// Service wraps Client as a hub-managed service
// The connection opens on Start and closes on Stop
type Service struct {
	config Config
	log    *zap.Logger

	mu       sync.RWMutex
	client   *Client
	observer Observer
}

// NewService creates an unconnected adjudicator service
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
		log:    zap.NewNop(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "remote"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: Config (optional), args[1]: *zap.Logger (optional)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(Config); ok {
			s.config = cfg
		}
	}
	if len(args) > 1 {
		if log, ok := args[1].(*zap.Logger); ok && log != nil {
			s.log = log
		}
	}
	if s.config.URL == "" {
		return fmt.Errorf("remote: empty server URL")
	}
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	client, err := Dial(context.Background(), s.config, s.log)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	client.SetObserver(s.observer)
	s.client = client
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.mu.Lock()
	client := s.client
	s.client = nil
	s.mu.Unlock()

	if client != nil {
		return client.Close()
	}
	return nil
}

// SetObserver installs the response observer on current and future connections
func (s *Service) SetObserver(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
	if s.client != nil {
		s.client.SetObserver(fn)
	}
}

// Connected reports whether a live client exists
func (s *Service) Connected() bool {
	c, err := s.current()
	if err != nil {
		return false
	}
	select {
	case <-c.Done():
		return false
	default:
		return true
	}
}

func (s *Service) current() (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, ErrNotConnected
	}
	return s.client, nil
}

func (s *Service) StartRound(ctx context.Context, bet decimal.Decimal, rows, cols int) (Response, error) {
	c, err := s.current()
	if err != nil {
		return Response{}, err
	}
	return c.StartRound(ctx, bet, rows, cols)
}

func (s *Service) ResolveCell(ctx context.Context, row, col int) (core.Outcome, error) {
	c, err := s.current()
	if err != nil {
		return core.Outcome{}, err
	}
	return c.ResolveCell(ctx, row, col)
}

func (s *Service) EndRound(ctx context.Context, reason string) error {
	c, err := s.current()
	if err != nil {
		return err
	}
	return c.EndRound(ctx, reason)
}

func (s *Service) Collect(ctx context.Context) (Response, error) {
	c, err := s.current()
	if err != nil {
		return Response{}, err
	}
	return c.Collect(ctx)
}
