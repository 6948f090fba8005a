package scheduling

import (
	"testing"

	"github.com/hospsim/hospsim/internal/domain/catalog"
)

func TestRequirementsFor(t *testing.T) {
	tests := []struct {
		name     string
		cond     Condition
		wantRole catalog.Role
		wantCap  catalog.Capability
		wantErr  bool
	}{
		{
			name:     "flu needs a general practitioner and no machine",
			cond:     Condition{Kind: ConditionFlu},
			wantRole: catalog.RoleGeneralPractitioner,
			wantCap:  catalog.CapabilityNone,
		},
		{
			name:     "head and neck cancer needs an oncologist and an advanced machine",
			cond:     Condition{Kind: ConditionCancer, Topology: TopologyHeadNeck},
			wantRole: catalog.RoleOncologist,
			wantCap:  catalog.CapabilityAdvanced,
		},
		{
			name:     "breast cancer needs an oncologist and a simple machine",
			cond:     Condition{Kind: ConditionCancer, Topology: TopologyBreast},
			wantRole: catalog.RoleOncologist,
			wantCap:  catalog.CapabilitySimple,
		},
		{
			name:    "cancer without topology has no rule",
			cond:    Condition{Kind: ConditionCancer},
			wantErr: true,
		},
		{
			name:    "unknown condition has no rule",
			cond:    Condition{Kind: ConditionKind("Migraine")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs, err := RequirementsFor(tt.cond)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got requirements %+v", reqs)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reqs.Role != tt.wantRole {
				t.Errorf("expected role %q, got %q", tt.wantRole, reqs.Role)
			}
			if reqs.Machine != tt.wantCap {
				t.Errorf("expected capability %q, got %q", tt.wantCap, reqs.Machine)
			}
		})
	}
}
