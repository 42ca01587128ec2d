package connector

import (
	"runtime"
	"time"
)

// Protocol defaults shared with the deployed receiver.
const (
	DefaultAddress         = "localhost:61234"
	DefaultConnectAttempts = 5
	DefaultRetryDelay      = time.Second
	DefaultWarmupDelay     = time.Second
)

// DefaultReceiverName returns the platform-native receiver binary name.
func DefaultReceiverName() string {
	if runtime.GOOS == "windows" {
		return "reporter.exe"
	}
	return "reporter"
}

// Config defines one connector's transport and bootstrap behavior.
type Config struct {
	// Address of the loopback receiver.
	Address string

	// ConnectAttempts bounds the dial loop; only connect failures are
	// retried.
	ConnectAttempts int

	// RetryDelay is slept between failed connect attempts.
	RetryDelay time.Duration

	// WarmupDelay is slept after spawning the receiver, before the
	// first connect. Best effort; the dial loop is the real safety net.
	WarmupDelay time.Duration

	// SpawnReceiver controls whether Submit boots a receiver child
	// before dialing.
	SpawnReceiver bool

	// ReceiverName is the receiver binary filename looked up in Dir.
	ReceiverName string

	// Dir holds the receiver binary. Empty means the process working
	// directory.
	Dir string

	// Starter launches the receiver child. Nil means ExecStarter.
	Starter ProcessStarter

	// Optional per-operation timeouts. Zero leaves the corresponding
	// operation blocking, which matches the receiver's contract.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultConfig returns the contract-aligned defaults: spawn the
// receiver from the working directory and submit to localhost:61234.
func DefaultConfig() Config {
	return Config{
		Address:         DefaultAddress,
		ConnectAttempts: DefaultConnectAttempts,
		RetryDelay:      DefaultRetryDelay,
		WarmupDelay:     DefaultWarmupDelay,
		SpawnReceiver:   true,
		ReceiverName:    DefaultReceiverName(),
	}
}

// WithDefaults fills unset fields without touching explicit choices.
func (c Config) WithDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = DefaultConnectAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.WarmupDelay < 0 {
		c.WarmupDelay = DefaultWarmupDelay
	}
	if c.ReceiverName == "" {
		c.ReceiverName = DefaultReceiverName()
	}
	if c.Starter == nil {
		c.Starter = ExecStarter{}
	}
	return c
}
