package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/dtbkit/dtb"
)

// printJSON marshals the subtree at n as indented JSON.
func (p *Printer) printJSON(n dtb.Node) error {
	m, err := p.buildModel(n, 0)
	if err != nil {
		return err
	}
	return p.writeJSON(m)
}

func (p *Printer) printPropJSON(pr dtb.Prop) error {
	m, err := p.buildPropModel(pr)
	if err != nil {
		return err
	}
	return p.writeJSON(m)
}

func (p *Printer) printReservationsJSON() error {
	entries, err := p.buildReservations()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []modelReservation{}
	}
	return p.writeJSON(entries)
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "%s\n", data)
	return err
}
