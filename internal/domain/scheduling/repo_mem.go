package scheduling

import (
	"context"
	"sync"
	"time"
)

// MemoryLedger is the in-memory ConsultationLedger. State is
// process-lifetime only; there is no persistence layer.
type MemoryLedger struct {
	mu    sync.RWMutex
	all   []*Consultation
	byDay map[time.Time][]*Consultation
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byDay: make(map[time.Time][]*Consultation)}
}

func (l *MemoryLedger) Append(_ context.Context, c *Consultation) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	day := Day(c.ConsultationDate)
	l.all = append(l.all, c)
	l.byDay[day] = append(l.byDay[day], c)
	return nil
}

func (l *MemoryLedger) ConsultationsOn(_ context.Context, day time.Time) ([]*Consultation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	booked := l.byDay[Day(day)]
	out := make([]*Consultation, len(booked))
	copy(out, booked)
	return out, nil
}

func (l *MemoryLedger) List(_ context.Context, limit, offset int) ([]*Consultation, int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := len(l.all)
	low, high := clamp(total, limit, offset)
	out := make([]*Consultation, high-low)
	copy(out, l.all[low:high])
	return out, total, nil
}

// MemoryPatientRegistry is the in-memory PatientRegistry.
type MemoryPatientRegistry struct {
	mu  sync.RWMutex
	all []*Patient
}

func NewMemoryPatientRegistry() *MemoryPatientRegistry {
	return &MemoryPatientRegistry{}
}

func (r *MemoryPatientRegistry) Append(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, p)
	return nil
}

func (r *MemoryPatientRegistry) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.all)
	low, high := clamp(total, limit, offset)
	out := make([]*Patient, high-low)
	copy(out, r.all[low:high])
	return out, total, nil
}

func clamp(total, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		return offset, total
	}
	high := offset + limit
	if high > total {
		high = total
	}
	return offset, high
}
