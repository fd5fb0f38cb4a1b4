package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	name     string
	startErr error
	mu       sync.Mutex
	stops    *[]string
	block    bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.stops = append(*s.stops, s.name)
	return nil
}

func TestRunnerStopsAllWhenOneServiceFails(t *testing.T) {
	var stops []string
	boom := errors.New("listen failed")
	runner := NewRunner(
		&fakeService{name: "http", block: true, stops: &stops},
		&fakeService{name: "worker", startErr: boom, stops: &stops},
	)
	cleaned := false
	runner.OnShutdown(func() error {
		cleaned = true
		return nil
	})

	err := runner.Run(context.Background(), time.Second, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"worker", "http"}, stops)
	assert.True(t, cleaned)
}

func TestRunnerCancelledContextIsCleanExit(t *testing.T) {
	var stops []string
	runner := NewRunner(&fakeService{name: "http", block: true, stops: &stops})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, runner.Run(ctx, time.Second, nil))
	assert.Equal(t, []string{"http"}, stops)
}

func TestRunnerWithoutServices(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	assert.Error(t, RunWithOptions(nil, Options{}))
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " API "})
	assert.Equal(t, ModeAPI, opts.Mode)
	assert.Equal(t, defaultShutdownTimeout, opts.ShutdownTimeout)
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, ModeAll, normalizeOptions(Options{}).Mode)
}
