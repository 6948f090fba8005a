package scheduling

import (
	"context"
	"time"
)

// ConsultationLedger is the growing record of scheduled consultations.
// Append-only: no deletion or mutation is exposed.
type ConsultationLedger interface {
	Append(ctx context.Context, c *Consultation) error
	// ConsultationsOn returns the consultations booked on the given
	// calendar day, in append order.
	ConsultationsOn(ctx context.Context, day time.Time) ([]*Consultation, error)
	List(ctx context.Context, limit, offset int) ([]*Consultation, int, error)
}

// PatientRegistry records every successfully scheduled patient.
type PatientRegistry interface {
	Append(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
