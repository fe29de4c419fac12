// Package team models the sales roster, converts tier TAM into required
// headcount, and derives the ramp-adjusted capacity timeline consumed by
// the allocator.
package team

import "sort"

// Role is one of the two sales-capacity roles.
type Role string

const (
	RoleAE Role = "AE" // Account Executive
	RoleSE Role = "SE" // Solutions Engineer
)

// Member is one rep on the roster. HireQuarter 0 means the rep predates
// the planning horizon and is at full capacity throughout; a positive
// value is the horizon quarter (1..12) the rep starts.
type Member struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Active      bool   `json:"active"`
	HireQuarter int    `json:"hire_quarter,omitempty"`

	// AccountAssignments are explicit account ids this rep owns. Assigned
	// accounts always dominate greedy allocation.
	AccountAssignments []string `json:"account_assignments,omitempty"`
}

// PlannedHire adds future headcount without named members.
type PlannedHire struct {
	Role    Role `json:"role"`
	Quarter int  `json:"quarter"`
	Count   int  `json:"count"`
}

// Roster is the sales team plus the hiring plan.
type Roster struct {
	Members    []Member      `json:"members"`
	HiringPlan []PlannedHire `json:"hiring_plan,omitempty"`
}

// PresentAt reports whether the member contributes headcount in a quarter.
func (m Member) PresentAt(quarter int) bool {
	return m.Active && m.HireQuarter <= quarter
}

// QuartersSinceHire is how many whole quarters the member has been on
// board at the given quarter; pre-horizon members report the full horizon.
func (m Member) QuartersSinceHire(quarter int) int {
	if m.HireQuarter <= 0 {
		return quarter // treated as fully ramped
	}
	return quarter - m.HireQuarter
}

// AssignedAEsByAccount maps account id to the AE members that explicitly
// own it. Member order within an account is id-sorted for determinism.
func (r *Roster) AssignedAEsByAccount() map[string][]Member {
	out := make(map[string][]Member)
	for _, m := range r.Members {
		if m.Role != RoleAE || !m.Active {
			continue
		}
		for _, acctID := range m.AccountAssignments {
			out[acctID] = append(out[acctID], m)
		}
	}
	for _, members := range out {
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	}
	return out
}

// HasAssignments reports whether the member owns any account.
func (m Member) HasAssignments() bool { return len(m.AccountAssignments) > 0 }
