package node

import (
	"github.com/dokzlo13/isynode/internal/eventbus"
)

// Publisher accepts events, e.g. *eventbus.Bus.
type Publisher interface {
	Publish(eventbus.Event)
}

// Publish forwards every status transition of the node to p as an
// EventTypeNodeStatus event. Unknown levels are published as nil.
func (n *Node) Publish(p Publisher) (cancel func()) {
	return n.Watch(func(prev, next Level) {
		p.Publish(eventbus.NewEvent(eventbus.EventTypeNodeStatus, map[string]interface{}{
			"node": n.id,
			"old":  levelData(prev),
			"new":  levelData(next),
		}))
	})
}

func levelData(l Level) interface{} {
	if !l.Valid {
		return nil
	}
	return l.Value
}
