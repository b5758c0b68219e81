package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Command is a request a node sent to the controller.
type Command struct {
	Node string
	Name string
	Arg  string
}

func (c Command) String() string {
	if c.Arg == "" {
		return fmt.Sprintf("%s %s", c.Node, c.Name)
	}
	return fmt.Sprintf("%s %s %s", c.Node, c.Name, c.Arg)
}

var accepted = []byte(`<RestResponse succeeded="true"><status>200</status></RestResponse>`)

// Conn serves captured documents and records commands.
type Conn struct {
	dir string

	mu       sync.Mutex
	commands []Command
}

// Open returns a Conn over dir. The directory must exist.
func Open(dir string) (*Conn, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("capture path %s is not a directory", dir)
	}
	return &Conn{dir: dir}, nil
}

// Dir returns the capture directory.
func (c *Conn) Dir() string {
	return c.dir
}

// FileName returns the file name used for a node id.
func FileName(id string) string {
	return strings.ReplaceAll(id, " ", "_") + ".xml"
}

func (c *Conn) read(kind, id string) ([]byte, error) {
	path := filepath.Join(c.dir, kind, FileName(id))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no captured %s for node %s: %w", kind, id, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Replayed captured document")
	return data, nil
}

// UpdateNode returns the captured property document of a node.
func (c *Conn) UpdateNode(_ context.Context, id string) ([]byte, error) {
	return c.read("nodes", id)
}

// GetNodeNotes returns the captured notes document of a node.
func (c *Conn) GetNodeNotes(_ context.Context, id string) ([]byte, error) {
	return c.read("notes", id)
}

func (c *Conn) record(id, name, arg string) ([]byte, error) {
	// Only nodes the controller knows about accept commands.
	if _, err := c.read("nodes", id); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.commands = append(c.commands, Command{Node: id, Name: name, Arg: arg})
	c.mu.Unlock()

	return accepted, nil
}

// NodeOn records a DON command, with the level when one is given.
func (c *Conn) NodeOn(_ context.Context, id string, level *int) ([]byte, error) {
	arg := ""
	if level != nil {
		arg = strconv.Itoa(*level)
	}
	return c.record(id, "DON", arg)
}

// NodeOff records a DOF command.
func (c *Conn) NodeOff(_ context.Context, id string) ([]byte, error) {
	return c.record(id, "DOF", "")
}

// NodeFastOn records a DFON command.
func (c *Conn) NodeFastOn(_ context.Context, id string) ([]byte, error) {
	return c.record(id, "DFON", "")
}

// NodeFastOff records a DFOF command.
func (c *Conn) NodeFastOff(_ context.Context, id string) ([]byte, error) {
	return c.record(id, "DFOF", "")
}

// NodeBright records a BRT command.
func (c *Conn) NodeBright(_ context.Context, id string) ([]byte, error) {
	return c.record(id, "BRT", "")
}

// NodeDim records a DIM command.
func (c *Conn) NodeDim(_ context.Context, id string) ([]byte, error) {
	return c.record(id, "DIM", "")
}

// NodeSecMd records a SECMD command with its mode.
func (c *Conn) NodeSecMd(_ context.Context, id string, mode string) ([]byte, error) {
	return c.record(id, "SECMD", mode)
}

// Commands returns the commands recorded so far.
func (c *Conn) Commands() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}
