/*
Copyright 2024 topo-configgen contributors
*/

package ingest

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/nodeforge/topo-configgen/pkg/topology"
)

// csvComputer is one row of a bulk host-import file, mirroring the teacher's
// ReadNodeCSV idiom: an os.File handed straight to gocsv.UnmarshalFile.
type csvComputer struct {
	Switch     string `csv:"switch"`
	Name       string `csv:"name"`
	PortType   string `csv:"portType"`
	PortNumber string `csv:"portNumber"`
	VLAN       string `csv:"vlan"`
}

// ReadComputersCSV parses a bulk host-import CSV file into computer
// entries, grouped by the switch device name each row targets, for the
// ingestion layer to fold into that switch's Computers field.
func ReadComputersCSV(filename string) (map[string][]topology.Computer, error) {
	f, err := os.OpenFile(filename, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []*csvComputer
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}

	out := make(map[string][]topology.Computer)
	for _, r := range rows {
		out[r.Switch] = append(out[r.Switch], topology.Computer{
			Name:       r.Name,
			PortType:   r.PortType,
			PortNumber: r.PortNumber,
			VLAN:       r.VLAN,
		})
	}
	return out, nil
}

// ApplyComputers merges CSV-imported computer entries onto their target
// switches by device name, appending after any computers already present.
func ApplyComputers(devices []*topology.Device, byName map[string][]topology.Computer) {
	for _, d := range devices {
		if extra, ok := byName[d.Name]; ok {
			d.Computers = append(d.Computers, extra...)
		}
	}
}
