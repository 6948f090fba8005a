package scheduling

import (
	"fmt"

	"github.com/hospsim/hospsim/internal/domain/catalog"
)

// Requirements describe the resources a condition needs: the doctor role
// and the treatment machine capability of the room. CapabilityNone means
// no machine is required; the engine then prefers machine-less rooms and
// falls back to any free room.
type Requirements struct {
	Role    catalog.Role
	Machine catalog.Capability
}

// RequirementsFor maps a condition onto its scheduling requirements. The
// rule set is exhaustive and closed; it rejects any combination the
// validator would have rejected.
func RequirementsFor(c Condition) (Requirements, error) {
	switch c.Kind {
	case ConditionFlu:
		return Requirements{Role: catalog.RoleGeneralPractitioner, Machine: catalog.CapabilityNone}, nil
	case ConditionCancer:
		switch c.Topology {
		case TopologyHeadNeck:
			return Requirements{Role: catalog.RoleOncologist, Machine: catalog.CapabilityAdvanced}, nil
		case TopologyBreast:
			return Requirements{Role: catalog.RoleOncologist, Machine: catalog.CapabilitySimple}, nil
		}
	}
	return Requirements{}, fmt.Errorf("no scheduling rule for condition %q/%q", c.Kind, c.Topology)
}
