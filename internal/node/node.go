package node

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/isynode/internal/watch"
)

// DefaultSettleDelay is how long a node waits after a command before polling
// the controller, giving the physical device time to reach its new level.
const DefaultSettleDelay = 500 * time.Millisecond

// Settings selects how a node reconciles its state. They are fixed for the
// lifetime of the node.
type Settings struct {
	// AutoUpdate is set when an event stream keeps nodes current. Commands
	// then apply their expected level instead of polling.
	AutoUpdate  bool
	SettleDelay time.Duration
}

// Deps are the collaborators a node is built with.
type Deps struct {
	Conn      Connection
	Directory Directory
	// Logger defaults to the global logger.
	Logger *zerolog.Logger
}

// Option configures a Node at construction.
type Option func(*Node)

// WithName sets the display name.
func WithName(name string) Option {
	return func(n *Node) { n.name = name }
}

// WithDimmable marks whether the node accepts intermediate levels.
func WithDimmable(dimmable bool) Option {
	return func(n *Node) { n.dimmable = dimmable }
}

// WithAutoUpdate selects push mode (true) or pull mode (false).
func WithAutoUpdate(enabled bool) Option {
	return func(n *Node) { n.settings.AutoUpdate = enabled }
}

// WithSettleDelay sets the pause between a command and the follow-up poll.
func WithSettleDelay(d time.Duration) Option {
	return func(n *Node) { n.settings.SettleDelay = d }
}

// WithSettings replaces all reconciliation settings.
func WithSettings(s Settings) Option {
	return func(n *Node) { n.settings = s }
}

// WithUnits seeds the unit of measure and precision of the state property.
func WithUnits(uom []string, prec string) Option {
	return func(n *Node) {
		n.uom = slices.Clone(uom)
		n.prec = prec
	}
}

// WithAuxProperties seeds the auxiliary property cache.
func WithAuxProperties(props []AuxProperty) Option {
	return func(n *Node) {
		for _, p := range props {
			n.aux[p.ID] = p
		}
	}
}

// WithSpoken preloads the spoken notes so they are never fetched.
func WithSpoken(text string) Option {
	return func(n *Node) { n.notes = loadedNotes(&text) }
}

// Node is the in-memory mirror of one controller device.
//
// A Node is not safe for concurrent commands; callers serialize access.
// Watching the status from other goroutines is safe.
type Node struct {
	id       string
	name     string
	dimmable bool
	settings Settings

	conn Connection
	dir  Directory
	log  zerolog.Logger

	status *watch.Value[Level]
	uom    []string
	prec   string
	aux    map[string]AuxProperty
	notes  notes
}

// New creates a node with its initial level.
func New(id string, initial Level, deps Deps, opts ...Option) *Node {
	logger := log.Logger
	if deps.Logger != nil {
		logger = *deps.Logger
	}

	n := &Node{
		id:       id,
		dimmable: true,
		settings: Settings{SettleDelay: DefaultSettleDelay},
		conn:     deps.Conn,
		dir:      deps.Directory,
		log:      logger.With().Str("node", id).Logger(),
		status:   watch.NewValue(initial),
		uom:      []string{},
		prec:     defaultPrec,
		aux:      make(map[string]AuxProperty),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// ID returns the controller-assigned identifier.
func (n *Node) ID() string { return n.id }

// Name returns the display name.
func (n *Node) Name() string { return n.name }

// Dimmable reports whether the node accepts intermediate levels.
func (n *Node) Dimmable() bool { return n.dimmable }

// Settings returns the reconciliation settings.
func (n *Node) Settings() Settings { return n.settings }

// Status returns the most recently reconciled level.
func (n *Node) Status() Level { return n.status.Get() }

// UOM returns the units of the state property.
func (n *Node) UOM() []string { return slices.Clone(n.uom) }

// Prec returns the precision of the state property.
func (n *Node) Prec() string { return n.prec }

// AuxProperties returns a copy of the auxiliary property cache.
func (n *Node) AuxProperties() map[string]AuxProperty {
	return maps.Clone(n.aux)
}

// AuxProperty returns one auxiliary property.
func (n *Node) AuxProperty(id string) (AuxProperty, bool) {
	p, ok := n.aux[id]
	return p, ok
}

func (n *Node) String() string {
	return "Node(" + n.id + ")"
}

// Watch registers fn for every status transition, whichever path caused it.
func (n *Node) Watch(fn watch.Watcher[Level]) (cancel func()) {
	return n.status.Watch(fn)
}

// SetStatus assigns a level the way a user would: it turns the node on at
// that level and reconciles afterwards.
func (n *Node) SetStatus(ctx context.Context, level int) bool {
	return n.OnLevel(ctx, level)
}

// Observe applies a level reported by an external event stream.
// Returns true when the status changed.
func (n *Node) Observe(level Level) bool {
	return n.status.Set(level)
}

// Update reconciles the node's state with the controller.
//
// In pull mode it waits for wait, fetches the node's properties and applies
// them. In push mode it applies hint, if any, without contacting the
// controller. Failures are logged; the returned error lets callers tell them
// apart from a no-op.
func (n *Node) Update(ctx context.Context, wait time.Duration, hint *int) error {
	if n.settings.AutoUpdate {
		if hint == nil {
			return nil
		}
		// Trust the hint, the event stream corrects any divergence.
		n.status.Set(LevelOf(*hint))
		n.log.Info().Int("level", *hint).Msg("Node updated from hint")
		return nil
	}

	if err := settle(ctx, wait); err != nil {
		n.log.Debug().Err(err).Msg("Node update cancelled")
		return err
	}

	data, err := n.conn.UpdateNode(ctx, n.id)
	if err == nil && len(data) == 0 {
		err = ErrNoResponse
	}
	if err != nil {
		n.log.Warn().Err(err).Msg("Could not update node")
		if !errors.Is(err, ErrNoResponse) {
			err = fmt.Errorf("%w: %v", ErrNoResponse, err)
		}
		return err
	}

	props, err := ParsePropertiesXML(data)
	if err != nil {
		n.log.Error().Err(err).Msg("Could not parse node properties, poorly formatted XML")
		return err
	}

	level, err := parseLevel(props.State)
	if err != nil {
		n.log.Error().Err(err).Str("value", *props.State).Msg("Could not parse node state value")
		return fmt.Errorf("%w: state value %q: %v", ErrMalformedResponse, *props.State, err)
	}

	for _, p := range props.Aux {
		n.aux[p.ID] = p
	}
	n.uom = props.StateUOM
	n.prec = props.StatePrec
	n.status.Set(level)

	n.log.Info().Str("level", level.String()).Int("aux", len(props.Aux)).Msg("Node updated")
	return nil
}

func settle(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
