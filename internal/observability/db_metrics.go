package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ObserveDB wraps a logical store operation with latency + error metrics.
func (p *Prom) ObserveDB(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil {
		status = "error"
		p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
	}
	p.DbQueryDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	return err
}

func classifyDBErr(err error) string {
	if err == nil {
		return "none"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return "unique_violation"
		case strings.HasPrefix(pgErr.Code, "23"):
			return "constraint"
		case strings.HasPrefix(pgErr.Code, "08"):
			return "connection"
		default:
			return "pg_" + pgErr.Code
		}
	}

	return "other"
}
