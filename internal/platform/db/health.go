package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const pingTimeout = 3 * time.Second

// Pinger is implemented by *pgxpool.Pool and pgxmock pools.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the database answers a ping. When p is a
// *pgxpool.Pool the response also carries connection counts.
func HealthHandler(p Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		start := time.Now()
		err := p.Ping(ctx)
		body := map[string]interface{}{
			"status":  "healthy",
			"latency": time.Since(start).String(),
		}
		if pool, ok := p.(*pgxpool.Pool); ok {
			st := pool.Stat()
			body["pool"] = map[string]int32{
				"total":    st.TotalConns(),
				"idle":     st.IdleConns(),
				"acquired": st.AcquiredConns(),
				"max":      st.MaxConns(),
			}
		}

		if err != nil {
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		return c.JSON(http.StatusOK, body)
	}
}
