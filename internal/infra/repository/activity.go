package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityLog writes employee activity entries on the pool, outside any
// business transaction. Failures are reported and swallowed: losing a log
// line must never roll back the operation it annotates.
type ActivityLog struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewActivityLog(pool *pgxpool.Pool, logger *slog.Logger) *ActivityLog {
	return &ActivityLog{pool: pool, logger: logger}
}

func (a *ActivityLog) Log(ctx context.Context, employeeID uuid.UUID, action string) {
	_, err := a.pool.Exec(ctx, `
		INSERT INTO activity_log (id, employee_id, action, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), employeeID, action, time.Now().UTC())
	if err != nil {
		a.logger.Warn("failed to record employee activity",
			"employee_id", employeeID.String(),
			"action", action,
			"error", err.Error())
	}
}
