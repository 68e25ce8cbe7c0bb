//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const defaultPostgresImage = "postgres:16-alpine"

// postgresContainer is a throwaway Postgres started with the Docker CLI.
type postgresContainer struct {
	id  string
	url string
}

func (p *postgresContainer) stop() {
	_ = exec.Command("docker", "rm", "-f", "-v", p.id).Run()
}

// startPostgres lets Docker pick the host port and waits until the server
// accepts connections. TEST_POSTGRES_IMAGE overrides the image.
func startPostgres(ctx context.Context) (*postgresContainer, error) {
	image := os.Getenv("TEST_POSTGRES_IMAGE")
	if image == "" {
		image = defaultPostgresImage
	}

	out, err := docker(ctx, "run", "-d", "--rm",
		"-p", "127.0.0.1::5432",
		"-e", "POSTGRES_USER=dentaldesk",
		"-e", "POSTGRES_PASSWORD=dentaldesk",
		"-e", "POSTGRES_DB=dentaldesk_test",
		image,
	)
	if err != nil {
		return nil, err
	}
	pc := &postgresContainer{id: out}

	hostPort, err := docker(ctx, "port", pc.id, "5432/tcp")
	if err != nil {
		pc.stop()
		return nil, err
	}
	// "127.0.0.1:49153", possibly followed by an IPv6 line.
	hostPort = strings.SplitN(hostPort, "\n", 2)[0]
	pc.url = fmt.Sprintf("postgres://dentaldesk:dentaldesk@%s/dentaldesk_test?sslmode=disable", hostPort)

	if err := waitReady(ctx, pc.url, 30*time.Second); err != nil {
		pc.stop()
		return nil, err
	}
	return pc, nil
}

func docker(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("docker %s: %w: %s", args[0], err, out)
	}
	return strings.TrimSpace(string(out)), nil
}

func waitReady(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tick := time.NewTicker(300 * time.Millisecond)
	defer tick.Stop()
	var lastErr error
	for {
		conn, err := pgx.Connect(ctx, url)
		if err == nil {
			err = conn.Ping(ctx)
			conn.Close(ctx)
			if err == nil {
				return nil
			}
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres not ready: %w", lastErr)
		case <-tick.C:
		}
	}
}
