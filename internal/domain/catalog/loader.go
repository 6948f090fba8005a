package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed document shape. Rooms reference machines by name; an empty or
// absent reference means the room has no machine installed.
type seedDoc struct {
	Doctors           []seedDoctor  `json:"doctors" yaml:"doctors"`
	TreatmentMachines []seedMachine `json:"treatmentMachines" yaml:"treatmentMachines"`
	TreatmentRooms    []seedRoom    `json:"treatmentRooms" yaml:"treatmentRooms"`
}

type seedDoctor struct {
	Name  string   `json:"name" yaml:"name"`
	Roles []string `json:"roles" yaml:"roles"`
}

type seedMachine struct {
	Name       string `json:"name" yaml:"name"`
	Capability string `json:"capability" yaml:"capability"`
}

type seedRoom struct {
	Name             string `json:"name" yaml:"name"`
	TreatmentMachine string `json:"treatmentMachine" yaml:"treatmentMachine"`
}

// Load reads a catalog seed file. The format is chosen by extension:
// .yaml/.yml parse as YAML, anything else as JSON.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, "yaml")
	default:
		return Parse(data, "json")
	}
}

// Parse builds a validated Catalog from raw seed data in the given format
// ("json" or "yaml").
func Parse(data []byte, format string) (*Catalog, error) {
	var doc seedDoc
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml seed: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	return build(doc)
}

func build(doc seedDoc) (*Catalog, error) {
	if len(doc.Doctors) == 0 {
		return nil, fmt.Errorf("seed defines no doctors")
	}
	if len(doc.TreatmentRooms) == 0 {
		return nil, fmt.Errorf("seed defines no treatment rooms")
	}

	cat := &Catalog{}

	seenDoctors := make(map[string]bool)
	for i, d := range doc.Doctors {
		if d.Name == "" {
			return nil, fmt.Errorf("doctor %d has no name", i)
		}
		if seenDoctors[d.Name] {
			return nil, fmt.Errorf("duplicate doctor %q", d.Name)
		}
		seenDoctors[d.Name] = true

		if len(d.Roles) == 0 {
			return nil, fmt.Errorf("doctor %q has no roles", d.Name)
		}
		doctor := Doctor{Name: d.Name}
		for _, r := range d.Roles {
			role, err := ParseRole(r)
			if err != nil {
				return nil, fmt.Errorf("doctor %q: %w", d.Name, err)
			}
			doctor.Roles = append(doctor.Roles, role)
		}
		cat.Doctors = append(cat.Doctors, doctor)
	}

	seenMachines := make(map[string]bool)
	for i, m := range doc.TreatmentMachines {
		if m.Name == "" {
			return nil, fmt.Errorf("treatment machine %d has no name", i)
		}
		if seenMachines[m.Name] {
			return nil, fmt.Errorf("duplicate treatment machine %q", m.Name)
		}
		seenMachines[m.Name] = true

		capability, err := ParseCapability(m.Capability)
		if err != nil {
			return nil, fmt.Errorf("treatment machine %q: %w", m.Name, err)
		}
		cat.Machines = append(cat.Machines, TreatmentMachine{Name: m.Name, Capability: capability})
	}

	seenRooms := make(map[string]bool)
	for i, r := range doc.TreatmentRooms {
		if r.Name == "" {
			return nil, fmt.Errorf("treatment room %d has no name", i)
		}
		if seenRooms[r.Name] {
			return nil, fmt.Errorf("duplicate treatment room %q", r.Name)
		}
		seenRooms[r.Name] = true

		machine := NoMachine
		if r.TreatmentMachine != "" {
			m, ok := cat.MachineByName(r.TreatmentMachine)
			if !ok {
				return nil, fmt.Errorf("treatment room %q references unknown machine %q", r.Name, r.TreatmentMachine)
			}
			machine = m
		}
		cat.Rooms = append(cat.Rooms, TreatmentRoom{Name: r.Name, Machine: machine})
	}

	return cat, nil
}
