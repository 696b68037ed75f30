package cubestate

import (
	"log/slog"
	"time"

	"github.com/SeamusWaldron/cubestate/internal/scramble"
	"github.com/SeamusWaldron/cubestate/internal/sequencer"
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	moveDuration   time.Duration
	scrambleLength int
	rng            RandomSource
	clock          func() time.Time
	logger         *slog.Logger
	metrics        *Metrics
	moveHistory    bool
}

func defaultConfig() *config {
	return &config{
		moveDuration:   sequencer.DefaultDuration,
		scrambleLength: scramble.DefaultLength,
		clock:          time.Now,
		logger:         slog.New(slog.DiscardHandler),
		moveHistory:    true,
	}
}

// WithMoveDuration sets the nominal time a renderer animates each move.
func WithMoveDuration(d time.Duration) Option {
	return func(c *config) {
		c.moveDuration = d
	}
}

// WithScrambleLength sets the length GenerateScramble uses when called
// with 0.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		c.scrambleLength = n
	}
}

// WithRandomSource sets the randomness used for scrambles.
func WithRandomSource(rng RandomSource) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithSeed makes scrambles reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = scramble.NewSeededRNG(seed)
	}
}

// WithClock sets the time source used to stamp rotations.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.clock = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), committed moves are kept and accessible via History().
// Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
