package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/isynode/internal/capture"
	"github.com/dokzlo13/isynode/internal/eventbus"
	"github.com/dokzlo13/isynode/internal/node"
)

var (
	inspectDir     string
	inspectCommand string
	inspectLevel   int
	inspectTimeout time.Duration
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <node-id>",
	Short: "Mirror a node from a capture directory",
	Long: `Build a node over a directory of captured controller responses, reconcile it,
optionally send it a command, and print its state, auxiliary properties,
spoken notes and scene membership.

Commands: on, off, fast-on, fast-off, bright, dim, lock, unlock.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := inspectDir
		if dir == "" {
			dir = cfg.Capture.Dir
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), inspectTimeout)
		defer cancel()

		var level *int
		if cmd.Flags().Changed("level") {
			level = &inspectLevel
		}
		return runInspect(ctx, cmd.OutOrStdout(), dir, args[0], inspectCommand, level)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDir, "dir", "", "Capture directory (default from config)")
	inspectCmd.Flags().StringVar(&inspectCommand, "command", "", "Command to send before printing")
	inspectCmd.Flags().IntVar(&inspectLevel, "level", node.Full, "Level for the on command")
	inspectCmd.Flags().DurationVar(&inspectTimeout, "timeout", 30*time.Second, "Overall timeout")
}

func runInspect(ctx context.Context, out io.Writer, dir, id, command string, level *int) error {
	conn, err := capture.Open(dir)
	if err != nil {
		return err
	}
	directory, err := capture.LoadDirectory(dir)
	if err != nil {
		return err
	}

	opts := []node.Option{
		node.WithAutoUpdate(cfg.Node.AutoUpdate),
		node.WithSettleDelay(cfg.Node.SettleDelay.Duration()),
	}
	if spec, ok := directory.Node(id); ok {
		opts = append(opts, node.WithName(spec.Name), node.WithDimmable(spec.IsDimmable()))
	}

	bus := eventbus.NewWithConfig(cfg.EventBus.GetWorkers(), cfg.EventBus.GetQueueSize())
	bus.Subscribe(eventbus.EventTypeNodeStatus, func(e eventbus.Event) {
		log.Info().
			Str("event_id", e.ID).
			Interface("node", e.Data["node"]).
			Interface("old", e.Data["old"]).
			Interface("new", e.Data["new"]).
			Msg("Node status changed")
	})
	defer bus.Close(context.Background())

	n := node.New(id, node.Level{}, node.Deps{Conn: conn, Directory: directory}, opts...)
	n.Publish(bus)

	if err := n.Update(ctx, 0, nil); err != nil && !cfg.Node.AutoUpdate {
		return fmt.Errorf("failed to read node %s: %w", id, err)
	}

	if command != "" {
		ok, err := sendCommand(ctx, n, command, level)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("controller rejected %s for node %s", command, id)
		}
		for _, c := range conn.Commands() {
			fmt.Fprintf(out, "sent: %s\n", c)
		}
	}

	printNode(ctx, out, n)
	return nil
}

// sendCommand dispatches a command by name. level only applies to "on".
func sendCommand(ctx context.Context, n *node.Node, command string, level *int) (bool, error) {
	switch strings.ToLower(command) {
	case "on":
		if level != nil {
			return n.OnLevel(ctx, *level), nil
		}
		return n.On(ctx), nil
	case "off":
		return n.Off(ctx), nil
	case "fast-on":
		return n.FastOn(ctx), nil
	case "fast-off":
		return n.FastOff(ctx), nil
	case "bright":
		return n.Bright(ctx), nil
	case "dim":
		return n.Dim(ctx), nil
	case "lock":
		return n.Lock(ctx), nil
	case "unlock":
		return n.Unlock(ctx), nil
	default:
		return false, fmt.Errorf("unknown command %q", command)
	}
}

func printNode(ctx context.Context, out io.Writer, n *node.Node) {
	fmt.Fprintf(out, "node:     %s\n", n.ID())
	if n.Name() != "" {
		fmt.Fprintf(out, "name:     %s\n", n.Name())
	}
	fmt.Fprintf(out, "dimmable: %t\n", n.Dimmable())
	fmt.Fprintf(out, "status:   %s\n", n.Status())
	fmt.Fprintf(out, "uom:      %s\n", units(n.UOM()))
	fmt.Fprintf(out, "prec:     %s\n", n.Prec())

	if spoken, ok := n.Spoken(ctx); ok {
		fmt.Fprintf(out, "spoken:   %s\n", spoken)
	}
	if groups := n.Groups(node.DefaultGroupFilter); len(groups) > 0 {
		fmt.Fprintf(out, "groups:   %s\n", strings.Join(groups, ", "))
	}

	aux := n.AuxProperties()
	if len(aux) == 0 {
		return
	}
	ids := make([]string, 0, len(aux))
	for id := range aux {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(out, "aux:")
	for _, id := range ids {
		p := aux[id]
		fmt.Fprintf(out, "  %s = %s %s (prec %s)\n", id, orDash(p.Value), units(p.UOM), p.Prec)
	}
}
