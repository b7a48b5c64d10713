package printer

import (
	"github.com/goccy/go-yaml"

	"github.com/joshuapare/dtbkit/dtb"
)

// printYAML marshals the subtree at n as YAML.
func (p *Printer) printYAML(n dtb.Node) error {
	m, err := p.buildModel(n, 0)
	if err != nil {
		return err
	}
	return p.writeYAML(m)
}

func (p *Printer) printPropYAML(pr dtb.Prop) error {
	m, err := p.buildPropModel(pr)
	if err != nil {
		return err
	}
	return p.writeYAML(m)
}

func (p *Printer) printReservationsYAML() error {
	entries, err := p.buildReservations()
	if err != nil {
		return err
	}
	return p.writeYAML(entries)
}

func (p *Printer) writeYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.w.Write(data)
	return err
}
