// Package receiver accepts framed game reports on loopback TCP and
// acknowledges each with a 2-byte answer code.
package receiver

import (
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/protocol/wire"
	"github.com/danmuck/reportctl/internal/report"
)

const DefaultAddress = "127.0.0.1:61234"

// Handler consumes one decoded report.
type Handler func(rep report.GameReport, from net.Addr)

// Config defines one receiver endpoint.
type Config struct {
	// Address to bind. Empty means the contract default.
	Address string

	// Handler runs on the accept goroutine for each accepted report.
	// Nil drops reports after acknowledging them.
	Handler Handler
}

// Receiver serves framed report submissions until closed.
type Receiver struct {
	cfg Config
	ln  net.Listener
}

// Listen binds the receiver socket. Serve must be called to accept
// submissions.
func Listen(cfg Config) (*Receiver, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	ln, err := net.Listen("tcp4", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("receiver: listen %s: %w", cfg.Address, err)
	}
	return &Receiver{cfg: cfg, ln: ln}, nil
}

// Addr returns the bound listen address.
func (r *Receiver) Addr() net.Addr {
	return r.ln.Addr()
}

// Serve accepts submissions until Close. Per-connection failures are
// logged and do not stop the loop.
func (r *Receiver) Serve() error {
	for {
		conn, err := r.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("receiver: accept: %w", err)
		}
		r.handle(conn)
	}
}

// Close shuts the listen socket down and unblocks Serve.
func (r *Receiver) Close() error {
	return r.ln.Close()
}

func (r *Receiver) handle(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.SetNoDelay(true); err != nil {
			log.Warn().Err(err).Msg("set tcp nodelay")
		}
	}

	rep, err := readReport(conn)
	if err != nil {
		if errors.Is(err, wire.ErrVersionMismatch) {
			// The connector learns about the mismatch through the
			// answer code, not a dropped connection.
			if werr := wire.WriteAnswerCode(conn, wire.AnswerWrongProtocol); werr != nil {
				log.Warn().Err(werr).Msg("write wrong-protocol answer")
			}
			observability.RecordReport("wrong_protocol")
			log.Warn().Str("from", conn.RemoteAddr().String()).Err(err).Msg("rejected report")
			return
		}
		observability.RecordReport("malformed")
		log.Warn().Str("from", conn.RemoteAddr().String()).Err(err).Msg("dropped report")
		return
	}

	if r.cfg.Handler != nil {
		r.cfg.Handler(rep, conn.RemoteAddr())
	}
	if err := wire.WriteAnswerCode(conn, wire.AnswerOK); err != nil {
		log.Warn().Err(err).Msg("write answer code")
		return
	}
	observability.RecordReport("ok")
}

// readReport decodes one framed record: protocol version, then the six
// length-prefixed fields in wire order, each capped at its ceiling.
func readReport(conn net.Conn) (report.GameReport, error) {
	version, err := wire.ReadVersion(conn)
	if err != nil {
		return report.GameReport{}, err
	}
	if version != wire.ProtocolVersion {
		return report.GameReport{}, fmt.Errorf("%w: got %d want %d",
			wire.ErrVersionMismatch, version, wire.ProtocolVersion)
	}

	var fields [report.NumFields][]byte
	for i := range fields {
		f := report.Field(i)
		b, err := wire.ReadString(conn, report.Limit(f))
		if err != nil {
			return report.GameReport{}, fmt.Errorf("read field %s: %w", f, err)
		}
		fields[i] = b
	}

	return report.GameReport{
		ReportName:  string(fields[report.FieldReportName]),
		ReportText:  string(fields[report.FieldReportText]),
		SenderName:  string(fields[report.FieldSenderName]),
		SenderEmail: string(fields[report.FieldSenderEmail]),
		GameName:    string(fields[report.FieldGameName]),
		GameVersion: string(fields[report.FieldGameVersion]),
	}, nil
}
