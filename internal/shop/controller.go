package shop

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
)

// Controller owns one State for a front end whose handlers run on many
// goroutines. Each Dispatch completes before the next one starts.
type Controller struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	state   State
	notice  Notice

	ttl     time.Duration
	now     func() time.Time
	newID   func() string
	metrics *Metrics
	log     *zap.Logger
}

type Option func(*Controller)

func WithNoticeTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func NewController(cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: cat,
		state:   NewState(),
		ttl:     DefaultNoticeTTL,
		now:     time.Now,
		newID:   func() string { return "n_" + uuid.NewString() },
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics.observeState(c.state)
	return c
}

// Snapshot is the rendered state plus the notice, when one is still showing.
type Snapshot struct {
	View
	Notice *Notice `json:"notice,omitempty"`
}

func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Dispatch applies the actions in order as one step and returns the
// resulting snapshot. The last notice produced wins.
func (c *Controller) Dispatch(actions ...Action) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range actions {
		next, n := Reduce(c.state, a)
		c.state = next

		if !n.IsZero() {
			c.notice = n.Stamp(c.newID(), c.now(), c.ttl)
		}

		c.metrics.observeAction(a)
		c.log.Debug("shop action",
			zap.String("action", ActionName(a)),
			zap.Int("line_items", len(next.Cart)),
			zap.Int("units", next.Cart.Units()),
			zap.String("total", next.Cart.Total().String()),
		)
	}
	c.metrics.observeState(c.state)

	return c.snapshotLocked()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset discards the cart, the filter and any notice.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = NewState()
	c.notice = Notice{}
	c.metrics.observeState(c.state)
	c.log.Info("shop state reset")

	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{View: c.state.View(c.catalog)}
	if c.notice.ActiveAt(c.now()) {
		n := c.notice
		s.Notice = &n
	}
	return s
}
