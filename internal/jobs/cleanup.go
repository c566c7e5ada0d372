// Package jobs holds the periodic maintenance jobs run by the worker.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukerupert/gymsup/internal/session"
)

// Job name constants for cleanup jobs
const (
	JobNameCleanupExpiredSessions = "cleanup:expired_sessions"
)

// CleanupResult holds the result of a cleanup operation
type CleanupResult struct {
	SessionsDeleted int64 `json:"sessions_deleted"`
}

// SessionCleanup deletes expired storefront sessions.
type SessionCleanup struct {
	sweeper session.Sweeper
	logger  *slog.Logger

	// OnResult is called after every successful run. May be nil.
	OnResult func(CleanupResult)
}

// NewSessionCleanup creates a cleanup job for the given store.
func NewSessionCleanup(sweeper session.Sweeper, logger *slog.Logger) *SessionCleanup {
	return &SessionCleanup{sweeper: sweeper, logger: logger}
}

// Name implements worker.Job.
func (j *SessionCleanup) Name() string {
	return JobNameCleanupExpiredSessions
}

// Run implements worker.Job.
func (j *SessionCleanup) Run(ctx context.Context) error {
	n, err := j.sweeper.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	result := CleanupResult{SessionsDeleted: n}
	if n > 0 {
		j.logger.Info("expired sessions deleted", "count", n)
	}
	if j.OnResult != nil {
		j.OnResult(result)
	}
	return nil
}
