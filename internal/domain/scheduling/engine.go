package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hospsim/hospsim/internal/domain/catalog"
)

// Errors returned by the scheduling engine.
var (
	// ErrNoSlotFound means the search horizon was exhausted without a
	// free doctor+room pairing for the condition.
	ErrNoSlotFound = errors.New("no consultation slot found within the search horizon")
)

// DefaultMaxLookaheadDays bounds the day scan when no explicit horizon is
// configured. Without a bound the scan would never terminate for
// conditions the catalog can never satisfy.
const DefaultMaxLookaheadDays = 365

// Engine finds the earliest future day with a free, eligible doctor and
// treatment room. It only reads the ledger; appending the result is the
// caller's responsibility.
type Engine struct {
	cat          *catalog.Catalog
	ledger       ConsultationLedger
	maxLookahead int
	log          zerolog.Logger
}

func NewEngine(cat *catalog.Catalog, ledger ConsultationLedger, maxLookaheadDays int, logger zerolog.Logger) *Engine {
	if maxLookaheadDays <= 0 {
		maxLookaheadDays = DefaultMaxLookaheadDays
	}
	return &Engine{
		cat:          cat,
		ledger:       ledger,
		maxLookahead: maxLookaheadDays,
		log:          logger,
	}
}

// Schedule returns a new Consultation for the patient on the earliest
// valid day strictly after today. The scan is deterministic: days are
// visited in increasing order and doctors/rooms are picked first-match in
// catalog order. Returns ErrNoSlotFound once the horizon is exhausted.
func (e *Engine) Schedule(ctx context.Context, patient *Patient, today time.Time) (*Consultation, error) {
	reqs, err := RequirementsFor(patient.Condition)
	if err != nil {
		return nil, err
	}

	capacity := e.cat.DailyCapacity()
	if capacity == 0 {
		return nil, ErrNoSlotFound
	}

	today = Day(today)
	for offset := 1; offset <= e.maxLookahead; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day := today.AddDate(0, 0, offset)
		daily, err := e.ledger.ConsultationsOn(ctx, day)
		if err != nil {
			return nil, err
		}
		if len(daily) >= capacity {
			continue
		}

		doctor, ok := e.pickDoctor(daily, reqs.Role)
		if !ok {
			continue
		}
		room, ok := e.pickRoom(daily, reqs.Machine)
		if !ok {
			continue
		}

		e.log.Debug().
			Str("patient", patient.Name).
			Str("doctor", doctor.Name).
			Str("room", room.Name).
			Time("date", day).
			Int("days_scanned", offset).
			Msg("slot found")

		return &Consultation{
			ID:               uuid.New(),
			Patient:          *patient,
			Doctor:           doctor,
			TreatmentRoom:    room,
			RegistrationDate: today,
			ConsultationDate: day,
		}, nil
	}

	return nil, ErrNoSlotFound
}

// pickDoctor returns the first doctor in catalog order holding the role
// and not already booked among the day's consultations.
func (e *Engine) pickDoctor(daily []*Consultation, role catalog.Role) (catalog.Doctor, bool) {
	for _, d := range e.cat.Doctors {
		if !d.HasRole(role) {
			continue
		}
		if doctorBooked(daily, d.Name) {
			continue
		}
		return d, true
	}
	return catalog.Doctor{}, false
}

// pickRoom returns the first unbooked room matching the capability. When
// no machine is required it prefers machine-less rooms and falls back to
// any unbooked room, so flu consultations do not starve while equipped
// rooms sit idle.
func (e *Engine) pickRoom(daily []*Consultation, capability catalog.Capability) (catalog.TreatmentRoom, bool) {
	if capability == catalog.CapabilityNone {
		for _, r := range e.cat.Rooms {
			if r.Machine.IsNone() && !roomBooked(daily, r.Name) {
				return r, true
			}
		}
		for _, r := range e.cat.Rooms {
			if !roomBooked(daily, r.Name) {
				return r, true
			}
		}
		return catalog.TreatmentRoom{}, false
	}

	for _, r := range e.cat.Rooms {
		if r.Machine.Capability != capability {
			continue
		}
		if roomBooked(daily, r.Name) {
			continue
		}
		return r, true
	}
	return catalog.TreatmentRoom{}, false
}

func doctorBooked(daily []*Consultation, name string) bool {
	for _, c := range daily {
		if c.Doctor.Name == name {
			return true
		}
	}
	return false
}

func roomBooked(daily []*Consultation, name string) bool {
	for _, c := range daily {
		if c.TreatmentRoom.Name == name {
			return true
		}
	}
	return false
}
