package user

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  Role
	}{
		{"manager", RoleManager},
		{"Manager", RoleManager},
		{"MANAGER", RoleManager},
		{"  manager  ", RoleManager},
		{"employee", RoleEmployee},
		{"developer", RoleEmployee},
		{"designer", RoleDesigner},
		{"Design", RoleDesigner},
		{"business", RoleBusiness},
		{"Business Analyst", RoleBusiness},
		{"team leader", RoleTeamLead},
		{"team-lead", RoleTeamLead},
		{"TeamLead", RoleTeamLead},
		{"", RoleEmployee},
		{"intern", RoleEmployee},
		{"???", RoleEmployee},
	}
	for _, c := range cases {
		got := ParseRole(c.input)
		if got != c.want {
			t.Errorf("ParseRole(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestDashboardFor(t *testing.T) {
	cases := []struct {
		role Role
		want DashboardView
	}{
		{RoleEmployee, DashboardEmployee},
		{RoleManager, DashboardManager},
		{RoleDesigner, DashboardDesigner},
		{RoleBusiness, DashboardBusiness},
		{RoleTeamLead, DashboardTeamLead},
		{Role("junk"), DashboardEmployee},
	}
	for _, c := range cases {
		got := DashboardFor(c.role)
		if got != c.want {
			t.Errorf("DashboardFor(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestParseRoleMatchesDashboard(t *testing.T) {
	// "MANAGER" and "manager" must resolve to the same view.
	if DashboardFor(ParseRole("MANAGER")) != DashboardFor(ParseRole("manager")) {
		t.Error("role casing changed the resolved dashboard")
	}
}

func TestCanAssignWork(t *testing.T) {
	manager := User{Role: RoleManager}
	lead := User{Role: RoleTeamLead}
	emp := User{Role: RoleEmployee}

	if !manager.CanAssignWork() || !lead.CanAssignWork() {
		t.Error("manager and team lead should be able to assign work")
	}
	if emp.CanAssignWork() {
		t.Error("employee should not be able to assign work")
	}
}
