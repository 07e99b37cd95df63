package publish

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// stubPublisher records the configs it was asked to publish.
type stubPublisher struct {
	mu        sync.Mutex
	calls     []Config
	err       error
	onPublish func(ctx context.Context, cfg Config)
}

func (s *stubPublisher) Publish(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	s.calls = append(s.calls, cfg)
	s.mu.Unlock()
	if s.onPublish != nil {
		s.onPublish(ctx, cfg)
	}
	return s.err
}

func (s *stubPublisher) Calls() []Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Config(nil), s.calls...)
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}

var errRemoteRejected = errors.New("remote rejected")
