package node

import (
	"context"
)

// Secure mode arguments for lock-capable devices.
const (
	secureLock   = "1"
	secureUnlock = "0"
)

// command sends a request and, once the controller accepted it, reconciles
// the node with hint. A nil hint forces a poll in pull mode and leaves the
// state alone in push mode.
func (n *Node) command(ctx context.Context, name string, send func() ([]byte, error), hint *int) bool {
	if _, err := send(); err != nil {
		n.log.Warn().Err(err).Str("command", name).Msg("Could not send command to node")
		return false
	}

	ev := n.log.Info().Str("command", name)
	if hint != nil {
		ev = ev.Int("hint", *hint)
	}
	ev.Msg("Command sent to node")

	_ = n.Update(ctx, n.settings.SettleDelay, hint)
	return true
}

func intPtr(v int) *int {
	return &v
}

// On turns the node on at its default on-level. The local status assumes
// full level until the controller says otherwise.
func (n *Node) On(ctx context.Context) bool {
	return n.command(ctx, "on", func() ([]byte, error) {
		return n.conn.NodeOn(ctx, n.id, nil)
	}, intPtr(Full))
}

// OnLevel turns the node on at level.
func (n *Node) OnLevel(ctx context.Context, level int) bool {
	return n.command(ctx, "on", func() ([]byte, error) {
		return n.conn.NodeOn(ctx, n.id, intPtr(level))
	}, intPtr(level))
}

// Off turns the node off.
func (n *Node) Off(ctx context.Context) bool {
	return n.command(ctx, "off", func() ([]byte, error) {
		return n.conn.NodeOff(ctx, n.id)
	}, intPtr(0))
}

// FastOn turns the node fully on, skipping its ramp rate.
func (n *Node) FastOn(ctx context.Context) bool {
	return n.command(ctx, "fast_on", func() ([]byte, error) {
		return n.conn.NodeFastOn(ctx, n.id)
	}, intPtr(Full))
}

// FastOff turns the node off, skipping its ramp rate.
func (n *Node) FastOff(ctx context.Context) bool {
	return n.command(ctx, "fast_off", func() ([]byte, error) {
		return n.conn.NodeFastOff(ctx, n.id)
	}, intPtr(0))
}

// Bright brightens the node by one step.
func (n *Node) Bright(ctx context.Context) bool {
	return n.command(ctx, "bright", func() ([]byte, error) {
		return n.conn.NodeBright(ctx, n.id)
	}, nil)
}

// Dim dims the node by one step.
func (n *Node) Dim(ctx context.Context) bool {
	return n.command(ctx, "dim", func() ([]byte, error) {
		return n.conn.NodeDim(ctx, n.id)
	}, nil)
}

// Lock locks a Z-Wave lock through a secure mode command.
func (n *Node) Lock(ctx context.Context) bool {
	return n.command(ctx, "lock", func() ([]byte, error) {
		return n.conn.NodeSecMd(ctx, n.id, secureLock)
	}, nil)
}

// Unlock unlocks a Z-Wave lock through a secure mode command.
func (n *Node) Unlock(ctx context.Context) bool {
	return n.command(ctx, "unlock", func() ([]byte, error) {
		return n.conn.NodeSecMd(ctx, n.id, secureUnlock)
	}, nil)
}
