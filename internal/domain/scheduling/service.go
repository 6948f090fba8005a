package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hospsim/hospsim/internal/domain/catalog"
	"github.com/hospsim/hospsim/internal/platform/metrics"
)

// ErrCatalogMissing means the resource catalog was never loaded; the
// service refuses registrations rather than searching empty collections.
var ErrCatalogMissing = errors.New("resource catalog is not loaded")

// ValidationError rejects a malformed registration before the scheduler
// runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid registration: " + e.Reason
}

// RegistrationRequest is the wire-level registration payload.
type RegistrationRequest struct {
	Name      string         `json:"name"`
	Condition ConditionInput `json:"condition"`
}

// ConditionInput carries the raw condition strings before parsing.
type ConditionInput struct {
	Type     string `json:"type"`
	Topology string `json:"topology,omitempty"`
}

// Service orchestrates registration: validate, schedule, record. The
// validate→schedule→append sequence runs under one mutex so concurrent
// registrations cannot race past the conflict checks and double-book.
type Service struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	engine   *Engine
	ledger   ConsultationLedger
	patients PatientRegistry
	metrics  metrics.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(cat *catalog.Catalog, engine *Engine, ledger ConsultationLedger, patients PatientRegistry, m metrics.Metrics, logger zerolog.Logger) *Service {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Service{
		cat:      cat,
		engine:   engine,
		ledger:   ledger,
		patients: patients,
		metrics:  m,
		log:      logger,
		now:      time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Register validates the request, schedules a consultation, and records
// both the patient and the consultation. Nothing is recorded on failure.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*Consultation, error) {
	if s.cat == nil || len(s.cat.Doctors) == 0 || len(s.cat.Rooms) == 0 {
		return nil, ErrCatalogMissing
	}

	cond, err := s.validate(req)
	if err != nil {
		s.metrics.IncRegistration(metrics.OutcomeRejected)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := Day(s.now())
	patient := &Patient{
		ID:           uuid.New(),
		Name:         req.Name,
		Condition:    cond,
		RegisteredAt: today,
	}

	cons, err := s.engine.Schedule(ctx, patient, today)
	if err != nil {
		if errors.Is(err, ErrNoSlotFound) {
			s.metrics.IncRegistration(metrics.OutcomeNoSlot)
			s.log.Warn().
				Str("patient", patient.Name).
				Str("condition", string(cond.Kind)).
				Msg("no slot found")
		}
		return nil, err
	}

	if err := s.patients.Append(ctx, patient); err != nil {
		return nil, fmt.Errorf("record patient: %w", err)
	}
	if err := s.ledger.Append(ctx, cons); err != nil {
		return nil, fmt.Errorf("record consultation: %w", err)
	}

	s.metrics.IncRegistration(metrics.OutcomeScheduled)
	s.metrics.ObserveScanDays(int(cons.ConsultationDate.Sub(today).Hours() / 24))
	s.log.Info().
		Str("patient", patient.Name).
		Str("doctor", cons.Doctor.Name).
		Str("room", cons.TreatmentRoom.Name).
		Time("date", cons.ConsultationDate).
		Msg("consultation scheduled")

	return cons, nil
}

func (s *Service) validate(req RegistrationRequest) (Condition, error) {
	if req.Name == "" {
		return Condition{}, &ValidationError{Reason: "name is required"}
	}

	kind, err := ParseConditionKind(req.Condition.Type)
	if err != nil {
		return Condition{}, &ValidationError{Reason: err.Error()}
	}
	topology, err := ParseTopology(req.Condition.Topology)
	if err != nil {
		return Condition{}, &ValidationError{Reason: err.Error()}
	}

	cond := Condition{Kind: kind, Topology: topology}
	if err := cond.Validate(); err != nil {
		return Condition{}, &ValidationError{Reason: err.Error()}
	}
	return cond, nil
}

// ListConsultations returns the ledger contents in append order.
func (s *Service) ListConsultations(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.ledger.List(ctx, limit, offset)
}

// ListPatients returns the registered patients in registration order.
func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
