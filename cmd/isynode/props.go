package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dokzlo13/isynode/internal/node"
)

var propsCmd = &cobra.Command{
	Use:   "props <file|->",
	Short: "Parse a node property document",
	Long:  `Classify the <property> elements of a controller node document into the state property and auxiliary properties.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		props, err := node.ParsePropertiesXML(data)
		if err != nil {
			return err
		}

		return printProperties(cmd.OutOrStdout(), props)
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <file|->",
	Short: "Parse a node notes document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		spoken, err := node.ParseNotesXML(data)
		if err != nil {
			return err
		}

		if spoken == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "spoken: -")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "spoken: %s\n", *spoken)
		return nil
	},
}

func printProperties(out io.Writer, props node.Properties) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tVALUE\tUOM\tPREC")
	if props.StatePrec != "" {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", node.StateProperty, orDash(props.State), units(props.StateUOM), props.StatePrec)
	}
	for _, p := range props.Aux {
		id := p.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, orDash(p.Value), units(p.UOM), p.Prec)
	}

	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func units(uom []string) string {
	if len(uom) == 0 {
		return "-"
	}
	return strings.Join(uom, "/")
}
