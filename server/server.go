package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
	"github.com/topi314/academy-dashboard/server/database"
	"github.com/topi314/academy-dashboard/server/notify"
)

func New(cfg Config) (*Server, error) {
	httpClient := &http.Client{}

	client, err := backend.New(cfg.Backend, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}

	notifier, err := notify.New(cfg.Notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	s := &Server{
		Cfg:      cfg,
		Backend:  client,
		Notifier: notifier,
		sessions: make(map[string]*session),
		done:     make(chan struct{}),
	}

	ttl := cfg.Cache.TTL.Std()
	switch cfg.Cache.Driver {
	case CacheDriverPostgres:
		db, err := database.New(cfg.Cache.Database, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.db = db
		s.Cache = db
	default:
		s.memory = cache.NewMemoryStore(ttl)
		s.Cache = s.memory
	}

	go s.cleanupSessions()

	return s, nil
}

type Server struct {
	Cfg      Config
	Backend  *backend.Client
	Cache    cache.Store
	Notifier *notify.Notifier

	server *http.Server
	db     *database.Database
	memory *cache.MemoryStore

	sessionsMu sync.Mutex
	sessions   map[string]*session
	done       chan struct{}
	stopOnce   sync.Once
}

func (s *Server) Start(handler http.Handler) {
	s.server = &http.Server{
		Addr:    s.Cfg.Server.Addr,
		Handler: handler,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", slog.Any("err", err))
		}
	}

	s.closeSessions()
	s.Notifier.Close(ctx)

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Failed to close database", slog.Any("err", err))
		}
	}
	if s.memory != nil {
		s.memory.Close()
	}
}
