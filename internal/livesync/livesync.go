package livesync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// Logger provides minimal logging required by the synchronizer.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Event is a change signal received from the server feed.
type Event struct {
	Type string `json:"type"`
}

// EventWishlistUpdated is the only signal kind; viewers re-fetch the full
// projection on every occurrence, so duplicates and reordering are harmless.
const EventWishlistUpdated = "wishlist_updated"

// Config controls the transport and its reconnect behaviour.
type Config struct {
	// URL is the websocket endpoint of one list's change feed.
	URL string

	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64

	readDeadline time.Duration
}

func (c *Config) fill() {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 30 * time.Second
	}
	if c.Multiplier <= 1 {
		c.Multiplier = 2
	}
	if c.readDeadline <= 0 {
		c.readDeadline = 120 * time.Second
	}
}

// Synchronizer keeps one viewer of one list converged: it holds the change
// feed subscription, triggers a full re-fetch for every signal, and redials
// with exponential backoff when the transport drops. It carries no write
// traffic; losing it only delays convergence.
type Synchronizer struct {
	cfg     Config
	refetch func(context.Context) error
	logger  Logger
	dialer  *websocket.Dialer

	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs a synchronizer. refetch must load a full, consistent
// snapshot; it is called once after every (re)connect and then once per
// change signal.
func New(cfg Config, refetch func(context.Context) error, logger Logger) *Synchronizer {
	cfg.fill()
	return &Synchronizer{
		cfg:     cfg,
		refetch: refetch,
		logger:  logger,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		done:    make(chan struct{}),
	}
}

// Start opens the subscription in the background. Use Close (or cancel the
// parent context) to stop; pending reconnect timers die with it.
func (s *Synchronizer) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

// Close tears down the transport and any pending reconnect attempt.
func (s *Synchronizer) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

func (s *Synchronizer) run(ctx context.Context) {
	defer close(s.done)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.InitialBackoff
	bo.MaxInterval = s.cfg.MaxBackoff
	bo.Multiplier = s.cfg.Multiplier
	bo.MaxElapsedTime = 0 // retry indefinitely
	bo.Reset()

	for {
		if ctx.Err() != nil {
			return
		}
		conn, _, err := s.dialer.DialContext(ctx, s.cfg.URL, nil)
		if err != nil {
			wait := bo.NextBackOff()
			if s.logger != nil {
				s.logger.Errorf("livesync dial %s: %v (retry in %s)", s.cfg.URL, err, wait)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		// successful connect restarts the backoff schedule
		bo.Reset()
		s.consume(ctx, conn)
		_ = conn.Close()
	}
}

// consume re-fetches once for the fresh connection, then once per signal,
// until the transport breaks or ctx ends.
func (s *Synchronizer) consume(ctx context.Context, conn *websocket.Conn) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	if err := s.refetch(ctx); err != nil && s.logger != nil {
		s.logger.Errorf("livesync refetch: %v", err)
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.readDeadline))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && s.logger != nil {
				s.logger.Errorf("livesync read: %v", err)
			}
			return
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		if ev.Type != EventWishlistUpdated {
			continue
		}
		if err := s.refetch(ctx); err != nil && s.logger != nil {
			s.logger.Errorf("livesync refetch: %v", err)
		}
	}
}
