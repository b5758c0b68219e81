package node

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// StateProperty is the id of the property carrying a node's primary state.
const StateProperty = "ST"

const defaultPrec = "0"

// Property is one <property> record as reported by the controller.
// Any attribute may be absent, in which case its field is nil.
type Property struct {
	ID    *string `xml:"id,attr"`
	UOM   *string `xml:"uom,attr"`
	Value *string `xml:"value,attr"`
	Prec  *string `xml:"prec,attr"`
}

// AuxProperty is a secondary property of a node, such as battery level.
// A record reported without an id has an empty ID.
type AuxProperty struct {
	ID    string
	Value *string
	Prec  string
	UOM   []string
}

// Properties is the classified content of a property list.
type Properties struct {
	State     *string
	StateUOM  []string
	StatePrec string
	Aux       []AuxProperty
}

// ParseProperties splits records into the state property and auxiliary
// properties. When several records carry the state id the last one wins.
func ParseProperties(records []Property) Properties {
	props := Properties{
		StateUOM: []string{},
		Aux:      []AuxProperty{},
	}

	for _, rec := range records {
		units := splitUnits(rec.UOM)
		prec := defaultPrec
		if rec.Prec != nil {
			prec = *rec.Prec
		}

		if rec.ID != nil && *rec.ID == StateProperty {
			props.State = rec.Value
			props.StateUOM = units
			props.StatePrec = prec
			continue
		}

		aux := AuxProperty{Value: rec.Value, Prec: prec, UOM: units}
		if rec.ID != nil {
			aux.ID = *rec.ID
		}
		props.Aux = append(props.Aux, aux)
	}

	return props
}

// splitUnits splits a compound unit such as "degrees/percent".
func splitUnits(uom *string) []string {
	if uom == nil || *uom == "" {
		return []string{}
	}
	return strings.Split(*uom, "/")
}

// ParsePropertiesXML collects every <property> element of a controller
// document, at any depth, and classifies them with ParseProperties.
func ParsePropertiesXML(data []byte) (Properties, error) {
	var records []Property

	err := walkXML(data, func(dec *xml.Decoder, start xml.StartElement) error {
		if start.Name.Local != "property" {
			return nil
		}
		var rec Property
		if err := dec.DecodeElement(&rec, &start); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return Properties{}, err
	}

	return ParseProperties(records), nil
}

var errNoRoot = errors.New("document has no root element")

// walkXML calls visit for every start element of data. It fails on
// malformed input and on documents without any element.
func walkXML(data []byte, visit func(*xml.Decoder, xml.StartElement) error) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	seen := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seen = true
		if err := visit(dec, start); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	if !seen {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, errNoRoot)
	}
	return nil
}
