// Package scheduling implements the consultation scheduler: patient
// registration, eligibility rules, the day-by-day slot search, and the
// append-only consultation ledger.
package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospsim/hospsim/internal/domain/catalog"
)

// ConditionKind is a diagnosed condition type. The set is closed; anything
// else is a validation error.
type ConditionKind string

const (
	ConditionFlu    ConditionKind = "Flu"
	ConditionCancer ConditionKind = "Cancer"
)

// ParseConditionKind parses a condition type case-insensitively.
func ParseConditionKind(s string) (ConditionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flu":
		return ConditionFlu, nil
	case "cancer":
		return ConditionCancer, nil
	default:
		return "", fmt.Errorf("unknown condition type %q", s)
	}
}

// Topology is the anatomical site of a cancer diagnosis.
type Topology string

const (
	TopologyNone     Topology = ""
	TopologyHeadNeck Topology = "Head&Neck"
	TopologyBreast   Topology = "Breast"
)

// ParseTopology parses a topology case-insensitively. The empty string is
// TopologyNone, valid only for conditions that carry no topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TopologyNone, nil
	case "head&neck":
		return TopologyHeadNeck, nil
	case "breast":
		return TopologyBreast, nil
	default:
		return "", fmt.Errorf("unknown topology %q", s)
	}
}

// Condition pairs a condition type with its topology.
type Condition struct {
	Kind     ConditionKind `json:"type"`
	Topology Topology      `json:"topology,omitempty"`
}

// Validate checks the (type, topology) pair against the closed set of
// valid combinations: Flu without topology, Cancer with Head&Neck or
// Breast.
func (c Condition) Validate() error {
	switch c.Kind {
	case ConditionFlu:
		if c.Topology != TopologyNone {
			return fmt.Errorf("flu condition must not carry a topology, got %q", c.Topology)
		}
		return nil
	case ConditionCancer:
		if c.Topology != TopologyHeadNeck && c.Topology != TopologyBreast {
			return fmt.Errorf("cancer condition requires a Head&Neck or Breast topology, got %q", c.Topology)
		}
		return nil
	default:
		return fmt.Errorf("unknown condition type %q", c.Kind)
	}
}

// Patient is a registered patient. Immutable once scheduled.
type Patient struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Condition    Condition `json:"condition"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Consultation is a scheduled appointment binding a patient to a doctor
// and a treatment room on a calendar day. Created once by the engine and
// never mutated.
type Consultation struct {
	ID               uuid.UUID             `json:"id"`
	Patient          Patient               `json:"patient"`
	Doctor           catalog.Doctor        `json:"doctor"`
	TreatmentRoom    catalog.TreatmentRoom `json:"treatmentRoom"`
	RegistrationDate time.Time             `json:"registrationDate"`
	ConsultationDate time.Time             `json:"consultationDate"`
}

// Day truncates a time to its UTC calendar day. All ledger dates are
// day-granular.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
