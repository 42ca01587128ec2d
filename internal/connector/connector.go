// Package connector delivers one game report to the loopback receiver
// and surfaces its 2-byte answer code.
//
// A submission is a straight-line operation: validate the record, make
// sure a receiver child is running, dial with a bounded retry loop,
// write the framed record, read the answer, half-close and close.
package connector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/protocol/wire"
	"github.com/danmuck/reportctl/internal/report"
)

var (
	ErrReceiverMissing  = errors.New("connector: receiver binary does not exist")
	ErrConnectExhausted = errors.New("connector: all connect attempts failed")
)

// Connector submits game reports over loopback TCP.
type Connector struct {
	cfg Config
}

func New(cfg Config) *Connector {
	return &Connector{cfg: cfg.WithDefaults()}
}

// Submit delivers one report and returns the receiver's answer code.
// The record is consumed by the call; revalidate before reusing it.
// Retries cover only connection establishment: a failure after the
// first framed byte is terminal for the submission.
func (c *Connector) Submit(ctx context.Context, rep report.GameReport) (wire.AnswerCode, error) {
	start := time.Now()
	code, err := c.submit(ctx, rep)
	observability.RecordSubmission(outcomeLabel(code, err), time.Since(start))
	return code, err
}

func (c *Connector) submit(ctx context.Context, rep report.GameReport) (wire.AnswerCode, error) {
	if err := rep.Validate(); err != nil {
		return 0, err
	}

	if c.cfg.SpawnReceiver {
		if err := c.bootstrap(ctx); err != nil {
			return 0, err
		}
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = conn.Close()
	}()

	return c.exchange(conn, rep)
}

// dial connects to the receiver, retrying transient failures with a
// fixed delay. At most cfg.ConnectAttempts connects are issued.
func (c *Connector) dial(ctx context.Context) (*net.TCPConn, error) {
	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.ConnectAttempts; attempt++ {
		observability.RecordConnectAttempt()
		conn, err := dialer.DialContext(ctx, "tcp4", c.cfg.Address)
		if err == nil {
			tcp, ok := conn.(*net.TCPConn)
			if !ok {
				_ = conn.Close()
				return nil, fmt.Errorf("connector: %s did not resolve to a tcp endpoint", c.cfg.Address)
			}
			if err := tcp.SetNoDelay(true); err != nil {
				log.Warn().Err(err).Msg("set tcp nodelay")
			}
			return tcp, nil
		}
		lastErr = err
		log.Warn().
			Int("attempt", attempt).
			Int("max_attempts", c.cfg.ConnectAttempts).
			Str("addr", c.cfg.Address).
			Err(err).
			Msg("connect failed")
		if attempt == c.cfg.ConnectAttempts {
			break
		}
		if err := sleepCtx(ctx, c.cfg.RetryDelay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %d attempts to %s: %v",
		ErrConnectExhausted, c.cfg.ConnectAttempts, c.cfg.Address, lastErr)
}

// exchange writes the framed record, reads the answer code, and shuts
// down the write half before the deferred close.
func (c *Connector) exchange(conn *net.TCPConn, rep report.GameReport) (wire.AnswerCode, error) {
	if c.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	if err := wire.WriteVersion(conn); err != nil {
		return 0, fmt.Errorf("connector: write protocol version: %w", err)
	}
	for i, field := range rep.Fields() {
		if err := wire.WriteString(conn, field); err != nil {
			return 0, fmt.Errorf("connector: write field %s: %w", report.Field(i), err)
		}
	}

	if c.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
	code, err := wire.ReadAnswerCode(conn)
	if err != nil {
		return 0, fmt.Errorf("connector: read answer code: %w", err)
	}

	if err := conn.CloseWrite(); err != nil {
		log.Warn().Err(err).Msg("shutdown write half")
	}
	return code, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func outcomeLabel(code wire.AnswerCode, err error) string {
	switch {
	case err == nil && code == wire.AnswerOK:
		return "ok"
	case err == nil:
		return "rejected"
	default:
		var limitErr *report.FieldLimitError
		if errors.As(err, &limitErr) {
			return "field_limit"
		}
		return "transport_error"
	}
}
