package server

import (
	"log/slog"
	"time"

	"github.com/topi314/academy-dashboard/server/cache"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

type session struct {
	dashboard *dashboard.Dashboard
	token     string
	lastSeen  time.Time
}

// Dashboard returns the dashboard of the session. A new one is created for unknown sessions and
// when the user token changed, the session cache is kept either way.
func (s *Server) Dashboard(sessionID string, token string) *dashboard.Dashboard {
	s.sessionsMu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok && sess.token == token {
		sess.lastSeen = time.Now()
		s.sessionsMu.Unlock()
		return sess.dashboard
	}

	var stale *dashboard.Dashboard
	if ok {
		stale = sess.dashboard
	} else {
		stale = s.evictOldestSession()
	}

	d := dashboard.New(s.Backend.WithToken(token), cache.NewSession(s.Cache, sessionID), dashboard.Options{
		LoadingTimeout:       s.Cfg.Dashboard.LoadingTimeout.Std(),
		ReconcileDelay:       s.Cfg.Dashboard.ReconcileDelay.Std(),
		HistoryPerPage:       s.Cfg.Dashboard.HistoryPerPage,
		RequestsPerPage:      s.Cfg.Dashboard.RequestsPerPage,
		MaxConcurrentFetches: s.Cfg.Dashboard.MaxConcurrentFetches,
		LogoutRedirect:       s.Cfg.Server.LogoutRedirect,
		Notifier:             s.Notifier,
	})
	s.sessions[sessionID] = &session{
		dashboard: d,
		token:     token,
		lastSeen:  time.Now(),
	}
	s.sessionsMu.Unlock()

	if stale != nil {
		slog.Debug("Replacing dashboard", slog.String("session", sessionID), slog.String("closed", stale.SessionID()))
		go stale.Close()
	}
	return d
}

// evictOldestSession drops the least recently seen session once MaxSessions is reached.
// sessionsMu must be held.
func (s *Server) evictOldestSession() *dashboard.Dashboard {
	limit := s.Cfg.Server.MaxSessions
	if limit <= 0 || len(s.sessions) < limit {
		return nil
	}

	var (
		oldestID string
		oldest   *session
	)
	for id, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	delete(s.sessions, oldestID)
	return oldest.dashboard
}

// EndSession forgets the dashboard of the session.
func (s *Server) EndSession(sessionID string) {
	s.sessionsMu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.sessionsMu.Unlock()

	if ok {
		sess.dashboard.Close()
	}
}

func (s *Server) cleanupSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.doCleanupSessions(time.Now()); n > 0 {
				slog.Debug("Cleaned up idle sessions", slog.Int("sessions", n))
			}
		}
	}
}

func (s *Server) doCleanupSessions(now time.Time) int {
	ttl := s.Cfg.Server.SessionTTL.Std()

	s.sessionsMu.Lock()
	var expired []*dashboard.Dashboard
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > ttl {
			expired = append(expired, sess.dashboard)
			delete(s.sessions, id)
		}
	}
	s.sessionsMu.Unlock()

	for _, d := range expired {
		d.Close()
	}
	return len(expired)
}

func (s *Server) closeSessions() {
	s.sessionsMu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.sessionsMu.Unlock()

	for _, sess := range sessions {
		sess.dashboard.Close()
	}
}
