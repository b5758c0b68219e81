package node

import "slices"

// GroupFilter selects which roles count as membership.
type GroupFilter struct {
	Controller bool
	Responder  bool
}

// DefaultGroupFilter matches groups the node controls or responds to.
var DefaultGroupFilter = GroupFilter{Controller: true, Responder: true}

// Groups returns the ids of the groups (scenes) this node takes part in,
// in directory order. It does not modify the node.
func (n *Node) Groups(filter GroupFilter) []string {
	groups := []string{}
	if n.dir == nil {
		return groups
	}

	for _, entry := range n.dir.Entries() {
		if entry.Kind != KindGroup {
			continue
		}
		group, ok := n.dir.Group(entry.ID)
		if !ok {
			continue
		}

		if (filter.Responder && slices.Contains(group.Members(), n.id)) ||
			(filter.Controller && slices.Contains(group.Controllers(), n.id)) {
			groups = append(groups, entry.ID)
		}
	}

	return groups
}
