package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/isynode/internal/node"
)

// DirectoryFile is the name of the node and group listing in a capture.
const DirectoryFile = "directory.yaml"

// NodeSpec describes a captured node.
type NodeSpec struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Dimmable *bool  `yaml:"dimmable,omitempty"`
}

// IsDimmable returns the dimmable flag, true when not set.
func (n NodeSpec) IsDimmable() bool {
	return n.Dimmable == nil || *n.Dimmable
}

// GroupSpec describes a captured scene.
type GroupSpec struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	MemberIDs  []string `yaml:"members"`
	ControlIDs []string `yaml:"controllers"`
}

// Members returns the responders of the scene.
func (g GroupSpec) Members() []string { return g.MemberIDs }

// Controllers returns the controllers of the scene.
func (g GroupSpec) Controllers() []string { return g.ControlIDs }

// Directory is the node and group listing of a capture.
type Directory struct {
	Nodes  []NodeSpec  `yaml:"nodes"`
	Groups []GroupSpec `yaml:"groups"`
}

// LoadDirectory reads directory.yaml from a capture directory. A capture
// without the file has an empty directory.
func LoadDirectory(dir string) (*Directory, error) {
	data, err := os.ReadFile(filepath.Join(dir, DirectoryFile))
	if os.IsNotExist(err) {
		return &Directory{}, nil
	}
	if err != nil {
		return nil, err
	}

	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DirectoryFile, err)
	}
	return &d, nil
}

// Entries lists nodes first, then groups, in file order.
func (d *Directory) Entries() []node.Entry {
	entries := make([]node.Entry, 0, len(d.Nodes)+len(d.Groups))
	for _, n := range d.Nodes {
		entries = append(entries, node.Entry{Kind: node.KindNode, ID: n.ID, Name: n.Name})
	}
	for _, g := range d.Groups {
		entries = append(entries, node.Entry{Kind: node.KindGroup, ID: g.ID, Name: g.Name})
	}
	return entries
}

// Group looks a scene up by id.
func (d *Directory) Group(id string) (node.Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Node looks a node up by id.
func (d *Directory) Node(id string) (NodeSpec, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSpec{}, false
}

var (
	_ node.Directory  = (*Directory)(nil)
	_ node.Connection = (*Conn)(nil)
)
