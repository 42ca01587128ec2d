package connector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ProcessStarter launches the receiver binary as a detached child.
type ProcessStarter interface {
	Start(path string) error
}

// ExecStarter spawns processes on the local host.
type ExecStarter struct{}

func (ExecStarter) Start(path string) error {
	cmd := exec.Command(path)
	cmd.Dir = filepath.Dir(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	// The child outlives the submission and is never supervised or
	// reaped here.
	return cmd.Process.Release()
}

// bootstrap makes sure a receiver child is running: it stats the
// platform-named binary next to the connector, spawns it with no
// arguments, and sleeps for the warm-up delay so the child can bind
// its listening socket.
func (c *Connector) bootstrap(ctx context.Context) error {
	dir := c.cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("connector: resolve working directory: %w", err)
		}
		dir = wd
	}

	path := filepath.Join(dir, c.cfg.ReceiverName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrReceiverMissing, path)
		}
		return fmt.Errorf("connector: stat receiver binary: %w", err)
	}

	if err := c.cfg.Starter.Start(path); err != nil {
		return fmt.Errorf("connector: start receiver %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("receiver spawned")

	return sleepCtx(ctx, c.cfg.WarmupDelay)
}
