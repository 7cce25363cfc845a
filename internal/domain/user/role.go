package user

import "strings"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Approves updates, leave, attendance
	RoleDesigner Role = "designer" // Design team member
	RoleBusiness Role = "business" // Business / analyst team member
	RoleTeamLead Role = "teamlead" // Assigns standalone tasks to the team
)

// DashboardView identifies which dashboard the frontend should render
// for a user.
type DashboardView string

const (
	DashboardEmployee DashboardView = "employee_dashboard"
	DashboardManager  DashboardView = "manager_dashboard"
	DashboardDesigner DashboardView = "designer_dashboard"
	DashboardBusiness DashboardView = "business_dashboard"
	DashboardTeamLead DashboardView = "teamlead_dashboard"
)

// roleSynonyms maps every accepted spelling to its canonical role. Role
// strings arrive from registration forms and legacy records in several
// casings and vocabularies, so normalization happens here once, at the
// boundary, and Role is a closed enum everywhere else.
var roleSynonyms = map[string]Role{
	"employee":         RoleEmployee,
	"developer":        RoleEmployee,
	"dev":              RoleEmployee,
	"staff":            RoleEmployee,
	"manager":          RoleManager,
	"designer":         RoleDesigner,
	"design":           RoleDesigner,
	"business":         RoleBusiness,
	"business analyst": RoleBusiness,
	"business-analyst": RoleBusiness,
	"teamlead":         RoleTeamLead,
	"team lead":        RoleTeamLead,
	"team-lead":        RoleTeamLead,
	"team leader":      RoleTeamLead,
	"teamleader":       RoleTeamLead,
}

// ParseRole normalizes a raw role string to a canonical Role. Unknown or
// missing values fall back to RoleEmployee.
func ParseRole(raw string) Role {
	key := strings.ToLower(strings.TrimSpace(raw))
	if role, ok := roleSynonyms[key]; ok {
		return role
	}
	return RoleEmployee
}

// IsValid reports whether the role is one of the canonical values.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleDesigner, RoleBusiness, RoleTeamLead:
		return true
	}
	return false
}

// DashboardFor maps a canonical role to its dashboard view.
func DashboardFor(role Role) DashboardView {
	switch role {
	case RoleManager:
		return DashboardManager
	case RoleDesigner:
		return DashboardDesigner
	case RoleBusiness:
		return DashboardBusiness
	case RoleTeamLead:
		return DashboardTeamLead
	default:
		return DashboardEmployee
	}
}
