package node

import "context"

// Connection is the part of the controller client a node uses.
// A non-nil error means the controller did not accept or answer the request.
type Connection interface {
	UpdateNode(ctx context.Context, id string) ([]byte, error)
	NodeOn(ctx context.Context, id string, level *int) ([]byte, error)
	NodeOff(ctx context.Context, id string) ([]byte, error)
	NodeFastOn(ctx context.Context, id string) ([]byte, error)
	NodeFastOff(ctx context.Context, id string) ([]byte, error)
	NodeBright(ctx context.Context, id string) ([]byte, error)
	NodeDim(ctx context.Context, id string) ([]byte, error)
	NodeSecMd(ctx context.Context, id string, mode string) ([]byte, error)
	GetNodeNotes(ctx context.Context, id string) ([]byte, error)
}

// Kind discriminates the entries of a Directory.
type Kind string

const (
	KindNode   Kind = "node"
	KindGroup  Kind = "group"
	KindFolder Kind = "folder"
)

// Entry is one item known to the owning collection.
type Entry struct {
	Kind Kind
	ID   string
	Name string
}

// Group is a scene: a set of responders driven by a set of controllers.
type Group interface {
	Members() []string
	Controllers() []string
}

// Directory is the view a node has of the collection that owns it.
type Directory interface {
	Entries() []Entry
	Group(id string) (Group, bool)
}
