// Package catalog holds the static hospital resources the scheduler draws
// from: doctors, treatment machines, and treatment rooms. The catalog is
// loaded once at startup and never mutated.
package catalog

import (
	"fmt"
	"strings"
)

// Role is a doctor capability tag.
type Role string

const (
	RoleGeneralPractitioner Role = "GeneralPractitioner"
	RoleOncologist          Role = "Oncologist"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generalpractitioner":
		return RoleGeneralPractitioner, nil
	case "oncologist":
		return RoleOncologist, nil
	default:
		return "", fmt.Errorf("unknown doctor role %q", s)
	}
}

// Capability classifies a treatment machine. CapabilityNone marks the
// no-machine sentinel for rooms without installed equipment.
type Capability string

const (
	CapabilityNone     Capability = ""
	CapabilitySimple   Capability = "Simple"
	CapabilityAdvanced Capability = "Advanced"
)

// ParseCapability parses a machine capability case-insensitively.
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return CapabilitySimple, nil
	case "advanced":
		return CapabilityAdvanced, nil
	default:
		return CapabilityNone, fmt.Errorf("unknown machine capability %q", s)
	}
}

// Doctor is a named practitioner holding one or more roles.
type Doctor struct {
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the doctor holds the given role.
func (d Doctor) HasRole(r Role) bool {
	for _, role := range d.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// TreatmentMachine is an installed machine. The zero value is the
// no-machine sentinel.
type TreatmentMachine struct {
	Name       string     `json:"name"`
	Capability Capability `json:"capability"`
}

// NoMachine is the sentinel for rooms without an installed machine.
var NoMachine = TreatmentMachine{}

// IsNone reports whether the machine is the no-machine sentinel.
func (m TreatmentMachine) IsNone() bool {
	return m.Name == ""
}

// TreatmentRoom is a named room with exactly one associated machine,
// possibly the no-machine sentinel.
type TreatmentRoom struct {
	Name    string           `json:"name"`
	Machine TreatmentMachine `json:"treatmentMachine"`
}

// Catalog is the full set of static resources. Slice order preserves the
// seed document order; the scheduler's first-match selection depends on it.
type Catalog struct {
	Doctors  []Doctor
	Machines []TreatmentMachine
	Rooms    []TreatmentRoom
}

// DailyCapacity is the maximum number of consultations schedulable on a
// single day: a consultation consumes one doctor and one room, so the
// scarcer resource bounds it.
func (c *Catalog) DailyCapacity() int {
	if len(c.Doctors) <= len(c.Rooms) {
		return len(c.Doctors)
	}
	return len(c.Rooms)
}

// MachineByName looks up a machine by name.
func (c *Catalog) MachineByName(name string) (TreatmentMachine, bool) {
	for _, m := range c.Machines {
		if m.Name == name {
			return m, true
		}
	}
	return NoMachine, false
}

// DoctorsWithRole returns the doctors holding the role, in catalog order.
func (c *Catalog) DoctorsWithRole(r Role) []Doctor {
	var out []Doctor
	for _, d := range c.Doctors {
		if d.HasRole(r) {
			out = append(out, d)
		}
	}
	return out
}
