package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospsim/hospsim/internal/domain/catalog"
)

func newTestService(cat *catalog.Catalog) (*Service, *MemoryLedger, *MemoryPatientRegistry) {
	ledger := NewMemoryLedger()
	patients := NewMemoryPatientRegistry()
	engine := NewEngine(cat, ledger, 30, zerolog.Nop())
	svc := NewService(cat, engine, ledger, patients, nil, zerolog.Nop())
	svc.SetClock(func() time.Time { return today })
	return svc, ledger, patients
}

func TestServiceRegisterSchedulesAndRecords(t *testing.T) {
	svc, ledger, patients := newTestService(testCatalog())
	ctx := context.Background()

	cons, err := svc.Register(ctx, RegistrationRequest{
		Name:      "Ada",
		Condition: ConditionInput{Type: "Flu"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cons.Patient.Name != "Ada" {
		t.Errorf("expected patient Ada, got %q", cons.Patient.Name)
	}
	if !cons.RegistrationDate.Equal(today) {
		t.Errorf("expected registration date %v, got %v", today, cons.RegistrationDate)
	}
	if !cons.ConsultationDate.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("expected consultation on the next day, got %v", cons.ConsultationDate)
	}

	_, total, err := ledger.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 consultation recorded, got %d", total)
	}
	all, total, err := patients.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 patient recorded, got %d", total)
	}
	if all[0].ID != cons.Patient.ID {
		t.Errorf("expected registered patient %s, got %s", cons.Patient.ID, all[0].ID)
	}
}

func TestServiceRegisterParsesCaseInsensitively(t *testing.T) {
	svc, _, _ := newTestService(testCatalog())

	cons, err := svc.Register(context.Background(), RegistrationRequest{
		Name:      "Grace",
		Condition: ConditionInput{Type: "cancer", Topology: "head&neck"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cons.Patient.Condition.Kind != ConditionCancer {
		t.Errorf("expected Cancer, got %q", cons.Patient.Condition.Kind)
	}
	if cons.Patient.Condition.Topology != TopologyHeadNeck {
		t.Errorf("expected Head&Neck, got %q", cons.Patient.Condition.Topology)
	}
}

func TestServiceRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RegistrationRequest
	}{
		{
			name: "missing name",
			req:  RegistrationRequest{Condition: ConditionInput{Type: "Flu"}},
		},
		{
			name: "unknown condition type",
			req:  RegistrationRequest{Name: "Ada", Condition: ConditionInput{Type: "Migraine"}},
		},
		{
			name: "unknown topology",
			req:  RegistrationRequest{Name: "Ada", Condition: ConditionInput{Type: "Cancer", Topology: "Stomach"}},
		},
		{
			name: "cancer without topology",
			req:  RegistrationRequest{Name: "Ada", Condition: ConditionInput{Type: "Cancer"}},
		},
		{
			name: "flu with topology",
			req:  RegistrationRequest{Name: "Ada", Condition: ConditionInput{Type: "Flu", Topology: "Breast"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ledger, patients := newTestService(testCatalog())
			ctx := context.Background()

			_, err := svc.Register(ctx, tt.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			// A rejected registration leaves no trace.
			if _, total, _ := ledger.List(ctx, 0, 0); total != 0 {
				t.Errorf("expected empty ledger, got %d consultations", total)
			}
			if _, total, _ := patients.List(ctx, 0, 0); total != 0 {
				t.Errorf("expected no patients, got %d", total)
			}
		})
	}
}

func TestServiceRegisterNoSlotLeavesNoTrace(t *testing.T) {
	cat := &catalog.Catalog{
		Doctors: []catalog.Doctor{
			{Name: "Anna", Roles: []catalog.Role{catalog.RoleGeneralPractitioner}},
		},
		Rooms: []catalog.TreatmentRoom{{Name: "One"}},
	}
	svc, ledger, patients := newTestService(cat)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegistrationRequest{
		Name:      "Grace",
		Condition: ConditionInput{Type: "Cancer", Topology: "Breast"},
	})
	if !errors.Is(err, ErrNoSlotFound) {
		t.Fatalf("expected ErrNoSlotFound, got %v", err)
	}
	if _, total, _ := ledger.List(ctx, 0, 0); total != 0 {
		t.Errorf("expected empty ledger, got %d consultations", total)
	}
	if _, total, _ := patients.List(ctx, 0, 0); total != 0 {
		t.Errorf("expected no patients, got %d", total)
	}
}

func TestServiceRegisterWithoutCatalog(t *testing.T) {
	svc, _, _ := newTestService(&catalog.Catalog{})

	_, err := svc.Register(context.Background(), RegistrationRequest{
		Name:      "Ada",
		Condition: ConditionInput{Type: "Flu"},
	})
	if !errors.Is(err, ErrCatalogMissing) {
		t.Fatalf("expected ErrCatalogMissing, got %v", err)
	}
}

func TestServiceRegisterFillsSuccessiveDays(t *testing.T) {
	svc, _, _ := newTestService(testCatalog())
	ctx := context.Background()

	// The single advanced room forces one head and neck consultation
	// per day.
	var dates []time.Time
	for i := 0; i < 3; i++ {
		cons, err := svc.Register(ctx, RegistrationRequest{
			Name:      "P",
			Condition: ConditionInput{Type: "Cancer", Topology: "Head&Neck"},
		})
		if err != nil {
			t.Fatalf("registration %d: unexpected error: %v", i, err)
		}
		dates = append(dates, cons.ConsultationDate)
	}

	for i, d := range dates {
		want := today.AddDate(0, 0, i+1)
		if !d.Equal(want) {
			t.Errorf("registration %d: expected %v, got %v", i, want, d)
		}
	}
}

func TestServiceListDelegation(t *testing.T) {
	svc, _, _ := newTestService(testCatalog())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Register(ctx, RegistrationRequest{
			Name:      "Ada",
			Condition: ConditionInput{Type: "Flu"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	cons, total, err := svc.ListConsultations(ctx, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(cons) != 1 {
		t.Errorf("expected page of 1 with total 2, got %d with total %d", len(cons), total)
	}
	pats, total, err := svc.ListPatients(ctx, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(pats) != 2 {
		t.Errorf("expected 2 patients, got %d with total %d", len(pats), total)
	}
}
