package node

import (
	"context"
	"encoding/xml"
	"strings"
)

type notesState int

const (
	notesUnloaded notesState = iota
	notesAbsent
	notesPresent
)

// notes caches the device notes. Only the spoken annotation is kept.
type notes struct {
	state  notesState
	spoken string
}

func loadedNotes(spoken *string) notes {
	if spoken == nil {
		return notes{state: notesAbsent}
	}
	return notes{state: notesPresent, spoken: *spoken}
}

// Spoken returns the spoken annotation from the device notes, fetching the
// notes on first use. ok is false when the node has no annotation.
//
// A notes document that fails to parse is not cached, the next call fetches
// it again.
func (n *Node) Spoken(ctx context.Context) (text string, ok bool) {
	if n.notes.state == notesUnloaded {
		n.loadNotes(ctx)
	}
	return n.notes.spoken, n.notes.state == notesPresent
}

func (n *Node) loadNotes(ctx context.Context) {
	data, err := n.conn.GetNodeNotes(ctx, n.id)
	if err != nil || len(data) == 0 {
		n.log.Debug().Err(err).Msg("Node has no notes")
		n.notes = loadedNotes(nil)
		return
	}

	spoken, err := ParseNotesXML(data)
	if err != nil {
		n.log.Error().Err(err).Msg("Could not parse node notes, poorly formatted XML")
		return
	}

	n.notes = loadedNotes(spoken)
	n.log.Debug().Bool("spoken", spoken != nil).Msg("Node notes loaded")
}

// ParseNotesXML returns the text of the first <spoken> element of a notes
// document, or nil when there is none or it is empty.
func ParseNotesXML(data []byte) (*string, error) {
	var (
		spoken *string
		found  bool
	)

	err := walkXML(data, func(dec *xml.Decoder, start xml.StartElement) error {
		if found || start.Name.Local != "spoken" {
			return nil
		}
		found = true

		var text struct {
			Value string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&text, &start); err != nil {
			return err
		}
		if strings.TrimSpace(text.Value) != "" {
			spoken = &text.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return spoken, nil
}
